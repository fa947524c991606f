package budget

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

// FileStore holds the whole ledger document in memory and persists it as one
// JSON file. Memory stays authoritative when a write fails.
type FileStore struct {
	mu   sync.RWMutex
	path string
	doc  model.Budget
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{path: filepath.Join(dataDir, "budget.json")}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.doc = model.EmptyBudget()
			return nil
		}
		return err
	}

	var loaded model.Budget
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	s.doc = sanitizeBudget(loaded)
	return nil
}

func (s *FileStore) saveLocked() error {
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Get() model.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBudget(s.doc)
}

// SetAccounts replaces the account collection and returns the sanitized copy
// that was stored.
func (s *FileStore) SetAccounts(accounts []model.Account) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Accounts = sanitizeAccounts(accounts)
	if err := s.saveLocked(); err != nil {
		return nil, err
	}
	return append([]model.Account(nil), s.doc.Accounts...), nil
}

type CategoryUpdate struct {
	ExpenseCategories    []model.Category    `json:"expenseCategories"`
	ExpenseSubcategories []model.Subcategory `json:"expenseSubcategories"`
	IncomeCategories     []model.Category    `json:"incomeCategories"`
	IncomeSubcategories  []model.Subcategory `json:"incomeSubcategories"`
}

func (s *FileStore) SetCategories(in CategoryUpdate) (CategoryUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.ExpenseCategories = sanitizeCategories(in.ExpenseCategories)
	s.doc.ExpenseSubcategories = sanitizeSubcategories(in.ExpenseSubcategories)
	s.doc.IncomeCategories = sanitizeCategories(in.IncomeCategories)
	s.doc.IncomeSubcategories = sanitizeSubcategories(in.IncomeSubcategories)
	if err := s.saveLocked(); err != nil {
		return CategoryUpdate{}, err
	}
	return CategoryUpdate{
		ExpenseCategories:    append([]model.Category(nil), s.doc.ExpenseCategories...),
		ExpenseSubcategories: append([]model.Subcategory(nil), s.doc.ExpenseSubcategories...),
		IncomeCategories:     append([]model.Category(nil), s.doc.IncomeCategories...),
		IncomeSubcategories:  append([]model.Subcategory(nil), s.doc.IncomeSubcategories...),
	}, nil
}

type TransactionUpdate struct {
	ExpenseTransactions  []model.Transaction `json:"expenseTransactions"`
	IncomeTransactions   []model.Transaction `json:"incomeTransactions"`
	TransferTransactions []model.Transfer    `json:"transferTransactions"`
}

func (s *FileStore) SetTransactions(in TransactionUpdate) (TransactionUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.ExpenseTransactions = sanitizeTransactions(in.ExpenseTransactions)
	s.doc.IncomeTransactions = sanitizeTransactions(in.IncomeTransactions)
	s.doc.TransferTransactions = sanitizeTransfers(in.TransferTransactions)
	if err := s.saveLocked(); err != nil {
		return TransactionUpdate{}, err
	}
	return TransactionUpdate{
		ExpenseTransactions:  append([]model.Transaction(nil), s.doc.ExpenseTransactions...),
		IncomeTransactions:   append([]model.Transaction(nil), s.doc.IncomeTransactions...),
		TransferTransactions: append([]model.Transfer(nil), s.doc.TransferTransactions...),
	}, nil
}

func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func sanitizeAccounts(in []model.Account) []model.Account {
	out := make([]model.Account, 0, len(in))
	for _, a := range in {
		a.ID = strings.TrimSpace(a.ID)
		a.Name = strings.TrimSpace(a.Name)
		a.Initial = sanitizeAmount(a.Initial)
		if a.ID == "" || a.Name == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func sanitizeCategories(in []model.Category) []model.Category {
	out := make([]model.Category, 0, len(in))
	for _, c := range in {
		c.ID = strings.TrimSpace(c.ID)
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" || c.Name == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func sanitizeSubcategories(in []model.Subcategory) []model.Subcategory {
	out := make([]model.Subcategory, 0, len(in))
	for _, c := range in {
		c.ID = strings.TrimSpace(c.ID)
		c.Name = strings.TrimSpace(c.Name)
		c.CategoryID = strings.TrimSpace(c.CategoryID)
		if c.ID == "" || c.Name == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func sanitizeTransactions(in []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(in))
	for _, tx := range in {
		tx.ID = strings.TrimSpace(tx.ID)
		tx.AccountID = strings.TrimSpace(tx.AccountID)
		tx.CategoryID = strings.TrimSpace(tx.CategoryID)
		tx.SubcategoryID = strings.TrimSpace(tx.SubcategoryID)
		tx.Amount = sanitizeAmount(tx.Amount)
		tx.Date = strings.TrimSpace(tx.Date)
		tx.Note = strings.TrimSpace(tx.Note)
		if tx.ID == "" || tx.AccountID == "" {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func sanitizeTransfers(in []model.Transfer) []model.Transfer {
	out := make([]model.Transfer, 0, len(in))
	for _, tx := range in {
		tx.ID = strings.TrimSpace(tx.ID)
		tx.FromAccountID = strings.TrimSpace(tx.FromAccountID)
		tx.ToAccountID = strings.TrimSpace(tx.ToAccountID)
		tx.Amount = sanitizeAmount(tx.Amount)
		tx.Date = strings.TrimSpace(tx.Date)
		tx.Note = strings.TrimSpace(tx.Note)
		if tx.ID == "" || tx.FromAccountID == "" || tx.ToAccountID == "" {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func sanitizeBudget(in model.Budget) model.Budget {
	return model.Budget{
		Accounts:             sanitizeAccounts(in.Accounts),
		ExpenseCategories:    sanitizeCategories(in.ExpenseCategories),
		ExpenseSubcategories: sanitizeSubcategories(in.ExpenseSubcategories),
		IncomeCategories:     sanitizeCategories(in.IncomeCategories),
		IncomeSubcategories:  sanitizeSubcategories(in.IncomeSubcategories),
		ExpenseTransactions:  sanitizeTransactions(in.ExpenseTransactions),
		IncomeTransactions:   sanitizeTransactions(in.IncomeTransactions),
		TransferTransactions: sanitizeTransfers(in.TransferTransactions),
	}
}

func cloneBudget(in model.Budget) model.Budget {
	return model.Budget{
		Accounts:             append([]model.Account{}, in.Accounts...),
		ExpenseCategories:    append([]model.Category{}, in.ExpenseCategories...),
		ExpenseSubcategories: append([]model.Subcategory{}, in.ExpenseSubcategories...),
		IncomeCategories:     append([]model.Category{}, in.IncomeCategories...),
		IncomeSubcategories:  append([]model.Subcategory{}, in.IncomeSubcategories...),
		ExpenseTransactions:  append([]model.Transaction{}, in.ExpenseTransactions...),
		IncomeTransactions:   append([]model.Transaction{}, in.IncomeTransactions...),
		TransferTransactions: append([]model.Transfer{}, in.TransferTransactions...),
	}
}
