/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/janus/apiserver/config"
	"github.com/janus/apiserver/internal/db"
	"github.com/janus/apiserver/internal/logger"
	"github.com/janus/apiserver/internal/services"
	"github.com/janus/apiserver/internal/storage"
	"github.com/janus/apiserver/internal/store"
	"github.com/janus/apiserver/types"
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit trail maintenance",
}

// auditExportCmd copies matching audit entries to the archive bucket.
var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit entries as NDJSON to the archive backend",
	Long: `Exports audit entries, newest first, as one newline-delimited JSON
object to the backend selected by ARCHIVE_BACKEND (minio or gcs). Usage:

	janus audit export --action LOGIN --key audit/logins.ndjson
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.New(cfg.Env, cfg.LogLevel)
		ctx := log.WithContext(cmd.Context())

		archive, err := storage.New(ctx, cfg.Archive)
		if err != nil {
			return err
		}

		dbConn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbConn.Close()

		flags := cmd.Flags()
		username, _ := flags.GetString("username")
		action, _ := flags.GetString("action")
		resourceType, _ := flags.GetString("resource-type")
		key, _ := flags.GetString("key")

		exporter := services.NewAuditExporter(store.NewAuditRepository(dbConn), archive)
		result, err := exporter.Export(ctx, types.AuditFilter{
			Username:     username,
			Action:       action,
			ResourceType: resourceType,
		}, key)
		if err != nil {
			return fmt.Errorf("export audit log: %w", err)
		}

		log.Info().
			Str("bucket", result.Bucket).
			Str("key", result.Key).
			Int("entries", result.Entries).
			Msg("audit export complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditExportCmd)

	auditExportCmd.Flags().String("username", "", "only export entries by this username")
	auditExportCmd.Flags().String("action", "", "only export entries with this action")
	auditExportCmd.Flags().String("resource-type", "", "only export entries for this resource type")
	auditExportCmd.Flags().String("key", "", "object key (default audit/<timestamp>.ndjson)")
}
