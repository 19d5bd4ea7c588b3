package util

import (
	"encoding/json"
	"fmt"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/VictoriaMetrics/metrics"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

var (
	Logger = logger.GetLogger("cli")
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds the store connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	defaults := common.DefaultClientConfig()

	key := "host"
	cmd.PersistentFlags().String(key, defaults.Host, WrapString("Host of the store server"))

	key = "port"
	cmd.PersistentFlags().Int(key, defaults.Port, WrapString("Port of the store server"))

	key = "db"
	cmd.PersistentFlags().Int(key, defaults.DB, WrapString("Logical database to select"))

	key = "password"
	cmd.PersistentFlags().String(key, "", WrapString("Password for the store server. Prefer the DSTRUCT_PASSWORD environment variable over this flag"))

	key = "dial-timeout"
	cmd.PersistentFlags().Int(key, defaults.DialTimeoutSecond, WrapString("Timeout in seconds for establishing a connection"))

	key = "read-timeout"
	cmd.PersistentFlags().Int(key, defaults.ReadTimeoutSecond, WrapString("Timeout in seconds for reading a reply"))

	key = "write-timeout"
	cmd.PersistentFlags().Int(key, defaults.WriteTimeoutSecond, WrapString("Timeout in seconds for writing a command"))

	key = "log-level"
	cmd.PersistentFlags().String(key, defaults.LogLevel, WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dstruct")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() common.ClientConfig {
	return common.ClientConfig{
		Host:               viper.GetString("host"),
		Port:               viper.GetInt("port"),
		DB:                 viper.GetInt("db"),
		Password:           viper.GetString("password"),
		DialTimeoutSecond:  viper.GetInt("dial-timeout"),
		ReadTimeoutSecond:  viper.GetInt("read-timeout"),
		WriteTimeoutSecond: viper.GetInt("write-timeout"),
		LogLevel:           viper.GetString("log-level"),
	}
}

// GetCodec creates the codec selected by the --codec flag
func GetCodec() (codec.ICodec, error) {
	return codec.Lookup(viper.GetString("codec"))
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupClient binds the flags of cmd, initializes the loggers and returns the
// client configuration together with the selected codec. Used as the first step
// of every command group's PersistentPreRunE.
func SetupClient(cmd *cobra.Command) (common.ClientConfig, codec.ICodec, error) {
	if err := BindCommandFlags(cmd); err != nil {
		return common.ClientConfig{}, nil, err
	}

	config := GetClientConfig()
	if err := common.InitLoggers(config.LogLevel); err != nil {
		return common.ClientConfig{}, nil, err
	}
	Logger.Debugf("Using configuration:%s", config.String())

	c, err := GetCodec()
	if err != nil {
		return common.ClientConfig{}, nil, err
	}
	return config, c, nil
}

// ParseValue interprets a command line argument as a json value.
// Arguments that are not valid json are taken as plain strings.
func ParseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}

// FormatValue renders a value for the terminal
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// WriteMetrics writes the collected operation metrics if the --metrics flag is set
func WriteMetrics(w io.Writer) {
	if !viper.GetBool("metrics") {
		return
	}
	fmt.Fprintln(w, "\n# metrics")
	metrics.WritePrometheus(w, false)
}
