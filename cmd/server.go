package cmd

import (
	"sonicstream/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动SonicStream服务器",
	Long:  `启动SonicStream音乐系统的HTTP服务器，提供曲目、播放列表和点赞API`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
