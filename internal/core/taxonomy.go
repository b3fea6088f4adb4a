package core

// IncomeCategories is the fixed list offered for income rows.
var IncomeCategories = []string{
	"Salary / Wages",
	"Business / Freelance Income",
	"Bonuses & Commissions",
	"Investment Income (dividends, interest)",
	"Rental Income",
	"Pensions",
	"Government Benefits (tax refund, child benefit, unemployment)",
	"Gifts Received",
	"Refunds / Reimbursements",
	"Other Income",
}

// ExpenseCategories is the fixed list offered for expense rows.
var ExpenseCategories = []string{
	"Housing - Rent / Mortgage",
	"Housing - Property Taxes",
	"Housing - Home Insurance",
	"Housing - Maintenance & Repairs",
	"Housing - HOA / Condo Fees",
	"Utilities - Electricity",
	"Utilities - Water",
	"Utilities - Gas",
	"Utilities - Internet",
	"Utilities - Mobile Phone",
	"Utilities - TV / Streaming",
	"Food - Groceries",
	"Food - Restaurants / Dining Out",
	"Food - Coffee / Snacks",
	"Food - Food Delivery",
	"Transportation - Fuel",
	"Transportation - Public Transport",
	"Transportation - Taxi / Ride Share",
	"Transportation - Car Payment",
	"Transportation - Car Insurance",
	"Transportation - Parking",
	"Transportation - Vehicle Maintenance",
	"Shopping & Personal - Clothing",
	"Shopping & Personal - Shoes",
	"Shopping & Personal - Electronics",
	"Shopping & Personal - Personal Care",
	"Shopping & Personal - Household Items",
	"Health - Health Insurance",
	"Health - Doctor / Dentist",
	"Health - Pharmacy / Medication",
	"Health - Fitness / Gym",
	"Entertainment & Lifestyle - Streaming Services",
	"Entertainment & Lifestyle - Hobbies",
	"Entertainment & Lifestyle - Events / Movies",
	"Entertainment & Lifestyle - Games",
	"Entertainment & Lifestyle - Subscriptions (non-utility)",
	"Travel - Flights",
	"Travel - Hotels",
	"Travel - Car Rental",
	"Travel - Travel Insurance",
	"Travel - Vacation Activities",
	"Financial - Bank Fees",
	"Financial - Credit Card Fees",
	"Financial - Loan Payments",
	"Financial - Interest Charges",
	"Financial - Taxes (income, local)",
	"Family & Education - Childcare",
	"Family & Education - School / Tuition",
	"Family & Education - Books & Courses",
	"Family & Education - Allowances",
	"Gifts & Donations - Gifts Given",
	"Gifts & Donations - Charity / Donations",
	"Miscellaneous - Cash Withdrawals",
	"Miscellaneous - Transfers",
	"Miscellaneous - Uncategorized",
	"Miscellaneous - Other Expenses",
}

// Currencies offered by the manual entry form.
var Currencies = []string{"USD", "EUR", "CHF", "GBP", "CAD", "AUD", "JPY", "SEK", "NOK", "DKK", "PLN"}

// DefaultCurrency is preselected in the currency picker.
const DefaultCurrency = "CHF"

// IsCurrency reports whether code is one of the offered currencies.
func IsCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}
