package config

import (
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

// NewStorage builds the filesystem-backed store from viper config.
func NewStorage(viper *viper.Viper, log log.Log) *storage.Store {
	root := viper.GetString("storage.data_dir")
	store := storage.NewStore(afero.NewOsFs(), storage.Options{
		Root:     root,
		IndexTTL: viper.GetDuration("storage.index_ttl"),
	})
	log.Info("storage-config", "storage engine initialized", "data_dir", root)
	return store
}
