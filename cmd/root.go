package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"chamados/config"
	"chamados/logs"
	"chamados/tools"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chamados",
	Short: "API de abertura e consulta de chamados.",
	Long: `API REST de chamados: abertura com número sequencial por ano,
busca por número ou e-mail, login e cadastro de colaboradores.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "config file path")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
}

// setup lê a configuração e prepara o logger padrão e o hash de senha.
func setup() (config.Configuration, *slog.Logger, error) {
	cfg, err := config.Read(cfgFile)
	if err != nil {
		return cfg, nil, err
	}
	logger := logs.New(cfg)
	slog.SetDefault(logger)

	p := cfg.Security.Password
	tools.SetPasswordParams(p.MemoryKiB, p.Iterations, p.Parallelism)
	return cfg, logger, nil
}
