// Package accounts manages the chart of accounts: creation, edits under the
// immutability rules, the rolls-up-to forest, and partial-name resolution.
package accounts

import (
	"fmt"
	"strings"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

// maxDepth bounds the rolls-up-to chain from any account to its top-level
// total.
const maxDepth = 6

// Service provides chart-of-accounts operations over a store.
type Service struct {
	store storage.Store
}

// NewService creates a Service backed by store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Create validates and persists a new account, returning it with its
// assigned id.
func (s *Service) Create(a model.Account) (model.Account, error) {
	if err := validate(a); err != nil {
		return model.Account{}, err
	}
	if _, err := s.store.AccountByName(a.Name); err == nil {
		return model.Account{}, &errs.ValidationError{Field: "name", Msg: fmt.Sprintf("account %q already exists", a.Name)}
	}
	if err := s.checkParent(a); err != nil {
		return model.Account{}, err
	}
	if err := s.store.CreateAccount(&a); err != nil {
		return model.Account{}, fmt.Errorf("creating account: %w", err)
	}
	return a, nil
}

// Update persists edits to an existing account. Description, number and the
// rollup parent are freely mutable; name, kind and normal balance are
// frozen once journal lines reference the account.
func (s *Service) Update(a model.Account) error {
	if err := validate(a); err != nil {
		return err
	}
	old, err := s.store.AccountByID(a.ID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(old.Name, a.Name) || old.Normal != a.Normal || old.Kind != a.Kind {
		has, err := s.store.AccountHasLines(a.ID)
		if err != nil {
			return err
		}
		if has {
			return &errs.ConstraintError{Msg: fmt.Sprintf(
				"account %s has journal lines; name, kind and normal balance cannot change", old.Name)}
		}
	}
	if err := s.checkParent(a); err != nil {
		return err
	}
	if err := s.store.UpdateAccount(a); err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	return nil
}

// Resolve maps a full or partial account name to exactly one account.
// Exact case-insensitive match wins outright; otherwise a case-insensitive
// substring search must produce a single candidate.
func (s *Service) Resolve(query string) (model.Account, error) {
	if a, err := s.store.AccountByName(query); err == nil {
		return a, nil
	}
	matches, err := s.Find(query)
	if err != nil {
		return model.Account{}, err
	}
	switch len(matches) {
	case 0:
		return model.Account{}, &errs.NotFoundError{Entity: "account", Key: query}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return model.Account{}, &errs.AmbiguousMatchError{Query: query, Candidates: names}
	}
}

// Find returns every account whose name contains query, case-insensitively.
func (s *Service) Find(query string) ([]model.Account, error) {
	all, err := s.store.Accounts()
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	q := strings.ToLower(query)
	var matches []model.Account
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Name), q) {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

// List returns the full chart ordered by name.
func (s *Service) List() ([]model.Account, error) {
	return s.store.Accounts()
}

// checkParent enforces the rolls-up-to invariants: the parent must be a
// total account, the link must not close a cycle, and the full chain from
// the account's deepest descendant up to its top-level total must stay
// within the depth bound.
func (s *Service) checkParent(a model.Account) error {
	if a.ParentID == 0 {
		return nil
	}
	if a.ParentID == a.ID {
		return &errs.ConstraintError{Msg: fmt.Sprintf("account %s cannot roll up to itself", a.Name)}
	}
	parent, err := s.store.AccountByID(a.ParentID)
	if err != nil {
		return err
	}
	if parent.Kind != model.KindTotal {
		return &errs.ConstraintError{Msg: fmt.Sprintf(
			"account %s is a posting account and cannot be a rollup parent", parent.Name)}
	}
	above := 1
	for cur := parent; cur.ParentID != 0; {
		if cur.ParentID == a.ID {
			return &errs.ConstraintError{Msg: fmt.Sprintf(
				"linking %s under %s would create a rollup cycle", a.Name, parent.Name)}
		}
		cur, err = s.store.AccountByID(cur.ParentID)
		if err != nil {
			return err
		}
		above++
		if above > maxDepth {
			return &errs.ConstraintError{Msg: fmt.Sprintf(
				"rollup chain above %s exceeds %d levels", a.Name, maxDepth)}
		}
	}
	below, err := s.subtreeHeight(a.ID)
	if err != nil {
		return err
	}
	if above+below > maxDepth {
		return &errs.ConstraintError{Msg: fmt.Sprintf(
			"linking %s under %s would push its subtree past %d levels", a.Name, parent.Name, maxDepth)}
	}
	return nil
}

// subtreeHeight returns the longest rollup chain, in links, from the
// account down to its deepest descendant. Zero for a new or childless
// account.
func (s *Service) subtreeHeight(id int64) (int, error) {
	if id == 0 {
		return 0, nil
	}
	all, err := s.store.Accounts()
	if err != nil {
		return 0, fmt.Errorf("listing accounts: %w", err)
	}
	children := make(map[int64][]int64)
	for _, acc := range all {
		if acc.ParentID != 0 {
			children[acc.ParentID] = append(children[acc.ParentID], acc.ID)
		}
	}
	var walk func(int64) int
	walk = func(id int64) int {
		h := 0
		for _, c := range children[id] {
			if ch := walk(c) + 1; ch > h {
				h = ch
			}
		}
		return h
	}
	return walk(id), nil
}

func validate(a model.Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return &errs.ValidationError{Field: "name", Msg: "account name is required"}
	}
	if a.Kind != model.KindPosting && a.Kind != model.KindTotal {
		return &errs.ValidationError{Field: "kind", Msg: fmt.Sprintf("unknown account kind %q", a.Kind)}
	}
	if a.Normal != model.NormalDebit && a.Normal != model.NormalCredit {
		return &errs.ValidationError{Field: "normal", Msg: fmt.Sprintf("unknown normal balance %q", a.Normal)}
	}
	return nil
}
