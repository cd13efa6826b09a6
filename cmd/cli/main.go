package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadilmartias/mock-interview/internal/config"
	applogger "github.com/fadilmartias/mock-interview/internal/logger"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/repository"
	"github.com/fadilmartias/mock-interview/internal/roster"
	"github.com/fadilmartias/mock-interview/internal/service"
	"github.com/fadilmartias/mock-interview/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type cliApp struct {
	logger      *zap.Logger
	roster      *roster.Roster
	credentials *service.CredentialService
	interviews  *usecase.InterviewUsecase
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var credentialsFile string
	var verbose bool
	app := &cliApp{}

	rootCmd := &cobra.Command{
		Use:   "mock-interview",
		Short: "Luyện phỏng vấn 3 vòng với người phỏng vấn AI",
		Long: `Mock interview practice in the terminal: an HR round, a technical round and a
situational round, each run by a simulated interviewer, followed by a report.

Examples:
  mock-interview play                   # start an interview
  mock-interview credential set         # store an API key
  mock-interview roster                 # list the interviewers`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(credentialsFile, verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials-file", "", "where to keep the API key when no database is configured")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log generator calls")

	rootCmd.AddCommand(newPlayCmd(app), newCredentialCmd(app), newRosterCmd(app))
	return rootCmd
}

func (a *cliApp) init(credentialsFile string, verbose bool) error {
	level := "error"
	if verbose {
		level = "debug"
	}
	a.logger = applogger.New(level, "console")
	a.roster = roster.Default()

	repo, err := credentialRepository(credentialsFile)
	if err != nil {
		return err
	}

	generator, credentials := service.NewGeneratorFromConfig(repo, a.logger)
	a.credentials = credentials

	sessionConfig := config.LoadSessionConfig()
	a.interviews = usecase.NewInterviewUsecase(usecase.Dependencies{
		Generator: generator,
		Reports:   usecase.NewReportUsecase(generator, a.logger),
		Roster:    a.roster,
		Logger:    a.logger,
	}, usecase.NewSessionStore(sessionConfig.MaxSessions, sessionConfig.TTL))
	return nil
}

func credentialRepository(path string) (service.CredentialRepositoryInterface, error) {
	dbConfig := config.LoadDBConfig()
	if dbConfig.Enabled() {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			dbConfig.Host, dbConfig.User, dbConfig.Password, dbConfig.Name, dbConfig.Port, dbConfig.SSLMode)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
		if err != nil {
			return nil, fmt.Errorf("could not connect to database: %w", err)
		}
		if err := db.AutoMigrate(&model.Credential{}); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return repository.NewCredentialRepository(db), nil
	}

	if path == "" {
		var err error
		if path, err = repository.DefaultCredentialPath(); err != nil {
			return nil, fmt.Errorf("no config directory for credentials: %w", err)
		}
	}
	return repository.NewFileCredentialRepository(path), nil
}

func newCredentialCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Quản lý API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.printCredentialStatus(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [api-key]",
		Short: "Store an API key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				if key, err = promptSecret("API Key"); err != nil {
					return err
				}
			}
			if err := app.credentials.Configure(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Println(green("Đã lưu API key."))
			return app.printCredentialStatus(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.credentials.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(green("Đã xoá API key."))
			return app.printCredentialStatus(cmd.Context())
		},
	})
	return cmd
}

func (a *cliApp) printCredentialStatus(ctx context.Context) error {
	configured, source, err := a.credentials.Status(ctx)
	if err != nil {
		return err
	}
	if !configured {
		fmt.Printf("%s %s\n", bold(a.credentials.Provider()), yellow("API key chưa được cấu hình"))
		return nil
	}
	fmt.Printf("%s %s %s\n", bold(a.credentials.Provider()), green("configured"), gray("("+source+")"))
	return nil
}

func newRosterCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "List the interviewers of each round",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, round := range model.Rounds {
				fmt.Println(roundHeader(round, app.roster.Title(round)))
				for _, p := range app.roster.Personas(round) {
					fmt.Println(personaCard(p))
				}
				fmt.Println()
			}
			return nil
		},
	}
}
