package config

import (
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/pushchain/ghapk/internal/exitcodes"
)

// Environment variables holding the required registry settings.
const (
	EnvToken = "GH_ACCESS_TOKEN"
	EnvOwner = "GH_OWNER"
	EnvRepo  = "GH_REPO"
)

// Config holds everything the session needs. It is built once at startup
// and handed by value to the release listing and to the deploy pipeline.
type Config struct {
	Token string // registry access credential
	Owner string // repository owner
	Repo  string // repository name

	APIURL string // GitHub REST base, e.g. https://api.github.com

	ADBHost string // ADB server address
	ADBPort int    // ADB server port
	ADBBin  string // adb executable used to talk to the server

	ScratchPath string // local download target for the artifact
	RemotePath  string // on-device path the artifact is pushed to

	DebugLog string // diagnostics log file; empty disables logging
}

// Defaults returns the built-in values for every optional setting.
func Defaults() Config {
	return Config{
		APIURL:      "https://api.github.com",
		ADBHost:     "127.0.0.1",
		ADBPort:     5037,
		ADBBin:      "adb",
		ScratchPath: "/tmp/app.apk",
		RemotePath:  "/data/local/tmp/app.apk",
	}
}

// ADBAddr returns host:port of the ADB server.
func (c Config) ADBAddr() string {
	return net.JoinHostPort(c.ADBHost, strconv.Itoa(c.ADBPort))
}

// Load reads the environment. GH_ACCESS_TOKEN, GH_OWNER and GH_REPO are
// required; optional overrides use the GHAPK_ prefix (GHAPK_ADB_HOST,
// GHAPK_SCRATCH_PATH, ...). A missing required value is a ConfigError.
func Load() (Config, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("api_url", def.APIURL)
	v.SetDefault("adb.host", def.ADBHost)
	v.SetDefault("adb.port", def.ADBPort)
	v.SetDefault("adb.bin", def.ADBBin)
	v.SetDefault("scratch_path", def.ScratchPath)
	v.SetDefault("remote_path", def.RemotePath)
	v.SetDefault("debug_log", "")

	v.SetEnvPrefix("GHAPK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Required keys keep their historical unprefixed names.
	_ = v.BindEnv("token", EnvToken)
	_ = v.BindEnv("owner", EnvOwner)
	_ = v.BindEnv("repo", EnvRepo)

	cfg := Config{
		Token:       strings.TrimSpace(v.GetString("token")),
		Owner:       strings.TrimSpace(v.GetString("owner")),
		Repo:        strings.TrimSpace(v.GetString("repo")),
		APIURL:      strings.TrimRight(v.GetString("api_url"), "/"),
		ADBHost:     v.GetString("adb.host"),
		ADBBin:      v.GetString("adb.bin"),
		ScratchPath: v.GetString("scratch_path"),
		RemotePath:  v.GetString("remote_path"),
		DebugLog:    v.GetString("debug_log"),
	}

	var missing []string
	if cfg.Token == "" {
		missing = append(missing, EnvToken)
	}
	if cfg.Owner == "" {
		missing = append(missing, EnvOwner)
	}
	if cfg.Repo == "" {
		missing = append(missing, EnvRepo)
	}
	if len(missing) > 0 {
		return Config{}, exitcodes.ConfigErrf("required environment not set: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(strings.TrimSpace(v.GetString("adb.port")))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, exitcodes.ConfigErrf("invalid GHAPK_ADB_PORT %q", v.GetString("adb.port"))
	}
	cfg.ADBPort = port

	if cfg.ScratchPath == "" || cfg.RemotePath == "" {
		return Config{}, exitcodes.ConfigErr("scratch and remote paths must not be empty")
	}

	return cfg, nil
}
