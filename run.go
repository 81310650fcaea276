package main

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hvac/config"
	"hvac/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a scenario and print the state after every block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := scenario.Load(args[0])
		if err != nil {
			return err
		}
		if err := runScenario(cmd, cfg, s); err != nil {
			return err
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			return nil
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return scenario.Watch(ctx, args[0], func(s *scenario.Scenario) {
			if err := runScenario(cmd, cfg, s); err != nil {
				log.WithField("err", err).Error("scenario run failed")
			}
		})
	},
}

func runScenario(cmd *cobra.Command, cfg config.Config, s *scenario.Scenario) error {
	p, err := s.Build(cfg)
	if err != nil {
		return err
	}
	if _, err := p.Run(); err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), s.Name, p)
}

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>",
	Short: "Check that a scenario decodes and every block accepts its parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := scenario.Load(args[0])
		if err != nil {
			return err
		}
		p, err := s.Build(cfg)
		if err != nil {
			return err
		}
		cmd.Printf("%s: %d blocks OK\n", args[0], p.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)

	runCmd.Flags().BoolP("watch", "w", false, "rerun the scenario every time the file changes")
}
