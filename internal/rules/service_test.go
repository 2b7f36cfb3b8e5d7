package rules

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	ex := model.Account{Name: "EX.AUTO", Kind: model.KindPosting, Normal: model.NormalDebit}
	require.NoError(t, store.CreateAccount(&ex))
	tot := model.Account{Name: "TOTEX", Kind: model.KindTotal, Normal: model.NormalDebit}
	require.NoError(t, store.CreateAccount(&tot))
	require.NoError(t, store.CreateTaxCode(model.TaxCode{Code: "G5", RatePercent: decimal.NewFromInt(5)}))
	return NewService(store), store
}

func TestAdd(t *testing.T) {
	s, _ := newTestService(t)
	r, err := s.Add(model.ImportRule{Keyword: "SHELL", AccountName: "EX.AUTO", TaxCode: "G5"})
	require.NoError(t, err)
	assert.NotZero(t, r.ID)

	all, err := s.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAdd_Validation(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Add(model.ImportRule{Keyword: "  ", AccountName: "EX.AUTO"})
	var verr *errs.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = s.Add(model.ImportRule{Keyword: "X", AccountName: "MISSING"})
	var nerr *errs.NotFoundError
	assert.True(t, errors.As(err, &nerr))

	_, err = s.Add(model.ImportRule{Keyword: "X", AccountName: "TOTEX"})
	var cerr *errs.ConstraintError
	assert.True(t, errors.As(err, &cerr))

	_, err = s.Add(model.ImportRule{Keyword: "X", AccountName: "EX.AUTO", TaxCode: "NOPE"})
	assert.True(t, errors.As(err, &nerr))
}

func TestUpdateAndDelete(t *testing.T) {
	s, _ := newTestService(t)
	r, err := s.Add(model.ImportRule{Keyword: "SHELL", AccountName: "EX.AUTO"})
	require.NoError(t, err)

	r.Priority = 9
	require.NoError(t, s.Update(r))
	all, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, 9, all[0].Priority)

	require.NoError(t, s.Delete(r.ID))
	all, err = s.List()
	require.NoError(t, err)
	assert.Empty(t, all)

	var nerr *errs.NotFoundError
	assert.True(t, errors.As(s.Delete(r.ID), &nerr))
}
