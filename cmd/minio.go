package cmd

import (
	"fmt"
	"log"

	"sonicstream/config"
	"sonicstream/storage"

	"github.com/spf13/cobra"
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "MinIO存储检查",
	Long:  `验证MinIO连接和存储桶是否可用。`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("开始连接MinIO服务器...")

		cfg := config.Load()
		fmt.Printf("MinIO配置: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("无法连接到MinIO: %v", err)
		}
		fmt.Println("MinIO连接成功，存储桶可用。")
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
}
