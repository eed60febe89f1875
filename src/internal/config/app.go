package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/repository"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/usecase"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

type BootstrapConfig struct {
	Storage  *storage.Store
	Log      log.Log
	Validate *validator.Validate
	Config   *viper.Viper
}

// App is the wired storage engine: one repository per entity kind plus
// the balance usecase over the transaction ledger.
type App struct {
	Users         *repository.UserRepository
	Freelancers   *repository.FreelancerRepository
	Organizations *repository.OrganizationRepository
	Projects      *repository.ProjectRepository
	Tasks         *repository.TaskRepository
	Transactions  *repository.TransactionRepository
	Balance       *usecase.BalanceUseCase
}

func Bootstrap(config *BootstrapConfig) *App {
	// setup repositories
	userRepository := repository.NewUserRepository(config.Storage, config.Validate, config.Log)
	freelancerRepository := repository.NewFreelancerRepository(config.Storage, config.Validate, config.Log)
	organizationRepository := repository.NewOrganizationRepository(config.Storage, userRepository, config.Validate, config.Log)
	projectRepository := repository.NewProjectRepository(config.Storage, config.Validate, config.Log)
	taskRepository := repository.NewTaskRepository(config.Storage, config.Validate, config.Log)
	transactionRepository := repository.NewTransactionRepository(
		config.Storage,
		config.Validate,
		config.Log,
		config.Config.GetInt("storage.scan_concurrency"),
	)

	// setup use cases
	balanceUseCase := usecase.NewBalanceUseCase(
		config.Log,
		config.Validate,
		transactionRepository,
		config.Config,
	)

	return &App{
		Users:         userRepository,
		Freelancers:   freelancerRepository,
		Organizations: organizationRepository,
		Projects:      projectRepository,
		Tasks:         taskRepository,
		Transactions:  transactionRepository,
		Balance:       balanceUseCase,
	}
}
