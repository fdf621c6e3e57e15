package main

import (
	"github.com/goforj/godump"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var dumpResult bool

var reclassifyCmd = &cobra.Command{
	Use:   "reclassify",
	Short: "Reclassify approved events against today once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.sched.RunNow(log.Logger.WithContext(cmd.Context()))
		if err != nil {
			return err
		}

		if dumpResult {
			godump.Dump(res)
			return nil
		}

		log.Info().
			Int64("past", res.Past).
			Int64("live", res.Live).
			Int64("upcoming", res.Upcoming).
			Int64("purged", res.Purged).
			Msg("reclassification finished")
		return nil
	},
}

func init() {
	reclassifyCmd.Flags().BoolVar(&dumpResult, "dump", false, "pretty print the result instead of logging it")
	rootCmd.AddCommand(reclassifyCmd)
}
