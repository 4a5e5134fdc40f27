package cmd

import (
	"context"
	"fmt"
	"log"

	"flamtunes/config"
	"flamtunes/storage"

	"github.com/spf13/cobra"
)

var (
	storageBucket string
	storagePrefix string
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "List objects in a storage bucket",
	Long:  `List the objects held in one of the application buckets, optionally filtered by key prefix. Useful for checking pending submissions and published tracks.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		bucket := storageBucket
		if bucket == "" {
			bucket = cfg.TracksBucket
		}

		objects, err := storage.ListObjects(context.Background(), cfg, bucket, storagePrefix)
		if err != nil {
			log.Fatalf("Failed to list objects: %v", err)
		}

		var total int64
		for _, obj := range objects {
			fmt.Printf("%10d  %s  %s\n", obj.Size, obj.LastModified.Format("2006-01-02 15:04:05"), obj.Key)
			total += obj.Size
		}
		fmt.Printf("\n%d objects, %d bytes in %s\n", len(objects), total, bucket)
	},
}

func init() {
	rootCmd.AddCommand(storageCmd)

	storageCmd.Flags().StringVarP(&storageBucket, "bucket", "b", "", "Bucket to list (defaults to the published tracks bucket)")
	storageCmd.Flags().StringVarP(&storagePrefix, "prefix", "p", "", "Filter objects by key prefix")

	storageCmd.Example = `  # List published tracks
  flamtunes storage

  # List pending submissions
  flamtunes storage -b artist-submissions -p submissions/`
}
