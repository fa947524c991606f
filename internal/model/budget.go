package model

// Account is a money account the ledger tracks balances against.
type Account struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Initial float64 `json:"initial"`
}

// Category and Subcategory label transactions; subcategories belong to a
// category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Subcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId,omitempty"`
}

// Transaction is a single income or expense entry against one account.
type Transaction struct {
	ID            string  `json:"id"`
	AccountID     string  `json:"accountId"`
	CategoryID    string  `json:"categoryId,omitempty"`
	SubcategoryID string  `json:"subcategoryId,omitempty"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// Transfer moves money between two accounts.
type Transfer struct {
	ID            string  `json:"id"`
	FromAccountID string  `json:"fromAccountId"`
	ToAccountID   string  `json:"toAccountId"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// Budget is the full personal-finance ledger document persisted as one unit.
type Budget struct {
	Accounts             []Account     `json:"accounts"`
	ExpenseCategories    []Category    `json:"expenseCategories"`
	ExpenseSubcategories []Subcategory `json:"expenseSubcategories"`
	IncomeCategories     []Category    `json:"incomeCategories"`
	IncomeSubcategories  []Subcategory `json:"incomeSubcategories"`
	ExpenseTransactions  []Transaction `json:"expenseTransactions"`
	IncomeTransactions   []Transaction `json:"incomeTransactions"`
	TransferTransactions []Transfer    `json:"transferTransactions"`
}

// EmptyBudget returns a budget document with every collection initialized,
// so JSON responses encode arrays rather than nulls.
func EmptyBudget() Budget {
	return Budget{
		Accounts:             []Account{},
		ExpenseCategories:    []Category{},
		ExpenseSubcategories: []Subcategory{},
		IncomeCategories:     []Category{},
		IncomeSubcategories:  []Subcategory{},
		ExpenseTransactions:  []Transaction{},
		IncomeTransactions:   []Transaction{},
		TransferTransactions: []Transfer{},
	}
}
