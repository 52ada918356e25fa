package standalone

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ternkv/tern/cmd/root"
	"github.com/ternkv/tern/public"
	"github.com/ternkv/tern/server"
	resphandler "github.com/ternkv/tern/server/resp"
	"github.com/ternkv/tern/server/resp/options"
)

var configFile string
var cmdAddr, cmdRuntimeDir string
var cmdReadTimeout, cmdWriteTimeout *int64

var standaloneCmd = &cobra.Command{
	Use:   "standalone",
	Short: "Standalone tern server",
	Long:  `Starts a single tern node serving the redis protocol on one tcp address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// a .env next to the binary can override the environment
		_ = godotenv.Load()
		viper.SetEnvPrefix("tern")
		viper.AutomaticEnv()

		if configFile != "" {
			viper.SetConfigFile(configFile)

			if err := viper.ReadInConfig(); err != nil {
				fmt.Printf("Unable to read configuration file: %s, please check whether the path is correct \n", configFile)
				os.Exit(1)
			}
		} else {
			viper.Set("server.addr", cmdAddr)
			viper.Set("server.runtimeDir", cmdRuntimeDir)
			viper.Set("server.readTimeout", *cmdReadTimeout)
			viper.Set("server.writeTimeout", *cmdWriteTimeout)
		}

		opt := options.DefaultOptions()
		if addr := viper.GetString("server.addr"); addr != "" {
			opt.Addr = addr
		}
		if dir := viper.GetString("server.runtimeDir"); dir != "" {
			opt.RuntimeDir = dir
		}
		opt.ReadTimeout = time.Duration(viper.GetInt64("server.readTimeout")) * time.Second
		opt.WriteTimeout = time.Duration(viper.GetInt64("server.writeTimeout")) * time.Second

		release, err := lockRuntimeDir(opt.RuntimeDir)
		if err != nil {
			return err
		}
		defer release()

		resphandler.SetupEngine()

		router := server.NewTcpSliceRouter()
		router.Group().Use(resphandler.RespMiddleware())

		srv := &server.TcpServer{
			Addr:         opt.Addr,
			Handler:      server.NewTcpSliceRouterHandler(router),
			ReadTimeout:  opt.ReadTimeout,
			WriteTimeout: opt.WriteTimeout,
		}
		return srv.ListenAndServe()
	},
}

// lockRuntimeDir takes the instance file lock so two servers cannot
// share one runtime directory.
func lockRuntimeDir(dir string) (func(), error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	fl := flock.New(filepath.Join(dir, public.FileLockName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, public.ErrDirOccupied
	}
	return func() { _ = fl.Unlock() }, nil
}

func init() {
	standaloneCmd.Flags().StringVarP(&configFile, "cpath", "f", "", "Path of the configuration file in yaml, json and toml format (optional)")
	standaloneCmd.Flags().StringVarP(&cmdAddr, "addr", "a", "127.0.0.1:6379", "Tcp address to listen on")
	standaloneCmd.Flags().StringVarP(&cmdRuntimeDir, "rdir", "d", "./tern-data", "Runtime directory holding the instance lock")
	cmdReadTimeout = standaloneCmd.Flags().Int64P("rtimeout", "", 0, "Read timeout per connection (unit: second, 0 disables)")
	cmdWriteTimeout = standaloneCmd.Flags().Int64P("wtimeout", "", 0, "Write timeout per connection (unit: second, 0 disables)")

	root.AddCommand(standaloneCmd)
}
