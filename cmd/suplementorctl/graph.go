package main

import (
	"github.com/spf13/cobra"
)

func newGraphSyncCmd() *cobra.Command {
	var prune bool
	cmd := &cobra.Command{
		Use:   "graph-sync",
		Short: "Mirror the knowledge graph projection into Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Services.KnowledgeGraph.Sync(cmd.Context(), prune)
			if err != nil {
				return err
			}
			if res.Skipped {
				cmd.PrintErrln("neo4j is not configured; nothing synced")
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&prune, "prune", false, "delete graph nodes that are no longer projected")
	return cmd
}
