package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/templui/goaltrack/internal/db"
)

// DevCmd applies pending migrations, then runs the API server under air.
func DevCmd() *cobra.Command {
	f := newMigrateFlags()
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Migrate the local database and run the API server with hot reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipMigrate {
				if err := f.run(cmd.Context(), db.RunMigrations); err != nil {
					return fmt.Errorf("migrate %s: %w", f.driver, err)
				}
			}
			return runDev()
		},
	}
	f.bind(cmd)
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "start air without applying pending migrations")

	return cmd
}

func runDev() error {
	airPath, err := exec.LookPath("air")
	if err != nil {
		fmt.Println("Missing binary: air")
		fmt.Println("Install with:")
		fmt.Println("  go install github.com/air-verse/air@latest")
		return fmt.Errorf("air not found")
	}

	airArgs := []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "go build -o ./tmp/main ./cmd/server",
		"-build.bin", "./tmp/main",
		"-build.delay", "100",
		"-build.exclude_dir", "bin,tmp,data,_examples",
		"-build.exclude_regex", "_test.go$",
		"-build.include_ext", "go,sql",
		"-build.kill_delay", "500ms",
		"-build.send_interrupt", "true",
	}

	env := os.Environ()
	if os.Getenv("APP_ENV") == "" {
		env = append(env, "APP_ENV=development")
	}

	return syscall.Exec(airPath, airArgs, env)
}
