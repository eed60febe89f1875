package repository

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

func newTestBackend(t *testing.T) (*storage.Store, *validator.Validate) {
	t.Helper()
	store := storage.NewStore(afero.NewMemMapFs(), storage.Options{Root: "data"})
	return store, validator.New()
}

func noopLog() log.Log { return log.Log{} }
