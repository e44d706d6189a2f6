/*
 * This file is part of nuts-ocpi.
 *
 * nuts-ocpi is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * nuts-ocpi is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with nuts-ocpi.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mitchellh/go-homedir"
	"github.com/nuts-foundation/nuts-ocpi/engine"
	"github.com/nuts-foundation/nuts-ocpi/pkg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "development"

var e = engine.NewOCPIEngine()

var rootCmd = &cobra.Command{
	Use:   "nuts-ocpi",
	Short: "OCPI party registration and credentials exchange",
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.AddCommand(e.Cmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the OCPI api server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version and the implemented OCPI versions",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nuts-ocpi %s\n", Version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	if err := e.Configure(); err != nil {
		return err
	}
	if err := e.Start(); err != nil {
		return err
	}

	server := echo.New()
	server.HideBanner = true
	server.Use(middleware.Logger())
	server.Use(middleware.BodyLimit("1M"))
	e.Routes(server)

	go func() {
		addr := fmt.Sprintf("%s:%d", viper.GetString(pkg.ConfInterface), viper.GetInt(pkg.ConfPort))
		if err := server.Start(addr); err != nil {
			logrus.WithError(err).Info("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Unable to shut down the server")
	}
	return e.Shutdown()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nuts-ocpi.yaml)")
	rootCmd.PersistentFlags().String(pkg.ConfLogLevel, "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().AddFlagSet(e.FlagSet)

	viper.BindPFlags(rootCmd.PersistentFlags())

	viper.SetEnvPrefix("NUTS_OCPI")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".nuts-ocpi" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".nuts-ocpi")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	level, err := logrus.ParseLevel(viper.GetString(pkg.ConfLogLevel))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	logrus.SetLevel(level)
}
