package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "lazyscales",
	Short: "Scale and fretboard explorer",
	Long: `lazyscales catalogs musical scales and their modes, identifies interval
sequences, and draws where a scale's notes fall on a fretted instrument.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .lazyscales.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().Bool("sharp", false, "spell accidentals with sharps")
	rootCmd.PersistentFlags().String("seed", "", "extra catalog file or directory of .toml files")
	rootCmd.PersistentFlags().String("db", "", "graph store path (default lazyscales.db)")
	rootCmd.PersistentFlags().Bool("from-db", false, "load the library from the graph store instead of the catalog")

	bindFlags()
}

// bindFlags ties persistent flags to their config keys.
func bindFlags() {
	_ = viper.BindPFlag("seed_path", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".lazyscales")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("LAZYSCALES")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
