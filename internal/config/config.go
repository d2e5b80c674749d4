// Package config loads VoxAlign's runtime configuration from flags, a
// config file, and VOXALIGN_-prefixed environment variables. Per viper's
// defaults, explicitly set flags win over environment variables, which
// win over the config file, which wins over built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig   `mapstructure:"paths"`
	Runtime  RuntimeConfig `mapstructure:"runtime"`
	Server   ServerConfig  `mapstructure:"server"`
	Align    AlignConfig   `mapstructure:"align"`
	ASR      ASRConfig     `mapstructure:"asr"`
	LogLevel string        `mapstructure:"log_level"`
}

type PathsConfig struct {
	WordModelManifest    string `mapstructure:"word_model_manifest"`
	PhonemeModelManifest string `mapstructure:"phoneme_model_manifest"`
	TokenizerModel       string `mapstructure:"tokenizer_model"`
}

type RuntimeConfig struct {
	Threads        int    `mapstructure:"threads"`
	InterOpThreads int    `mapstructure:"inter_op_threads"`
	ORTLibraryPath string `mapstructure:"ort_library_path"`
	ORTVersion     string `mapstructure:"ort_version"`
	DevicePref     string `mapstructure:"device_preference"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_secs"`
	MaxAudioBytes   int    `mapstructure:"max_audio_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout_secs"`
}

type AlignConfig struct {
	DefaultBackend  string `mapstructure:"default_backend"`
	DefaultLanguage string `mapstructure:"default_language"`
}

type ASRConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	DefaultBackend string `mapstructure:"default_backend"`
	UseHF          bool   `mapstructure:"use_hf"`
	Device         string `mapstructure:"device"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			WordModelManifest:    "models/ctc_word/manifest.json",
			PhonemeModelManifest: "models/ctc_phoneme/manifest.json",
			TokenizerModel:       "models/tokenizer.model",
		},
		Runtime: RuntimeConfig{
			Threads:        4,
			InterOpThreads: 1,
			ORTLibraryPath: "",
			ORTVersion:     "",
			DevicePref:     "auto",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         4,
			ShutdownTimeout: 30,
			MaxAudioBytes:   64 * 1024 * 1024,
			RequestTimeout:  60,
		},
		Align: AlignConfig{
			DefaultBackend:  "phoneme_first",
			DefaultLanguage: "auto",
		},
		ASR: ASRConfig{
			Enabled:        true,
			DefaultBackend: "auto",
			UseHF:          false,
			Device:         "auto",
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("word-model-manifest", defaults.Paths.WordModelManifest, "Path to the word-level CTC model manifest")
	fs.String("phoneme-model-manifest", defaults.Paths.PhonemeModelManifest, "Path to the phoneme-level CTC model manifest")
	fs.String("tokenizer-model", defaults.Paths.TokenizerModel, "Path to the SentencePiece tokenizer model")
	fs.Int("runtime-threads", defaults.Runtime.Threads, "ONNX Runtime intra-op thread count")
	fs.Int("runtime-inter-op-threads", defaults.Runtime.InterOpThreads, "ONNX Runtime inter-op thread count")
	fs.String("ort-lib", defaults.Runtime.ORTLibraryPath, "Path to the ONNX Runtime shared library")
	fs.String("ort-version", defaults.Runtime.ORTVersion, "Expected ONNX Runtime version")
	fs.String("device", defaults.Runtime.DevicePref, "Inference device preference (auto|cpu|cuda)")
	fs.String("listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent alignment requests served at once")
	fs.Int("shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain timeout in seconds")
	fs.Int("max-audio-bytes", defaults.Server.MaxAudioBytes, "Maximum request audio payload size in bytes (stored; requests are not checked against it)")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Per-request alignment timeout in seconds")
	fs.String("backend", defaults.Align.DefaultBackend, "Default alignment backend (uniform|ctc_trellis|phoneme_first)")
	fs.String("language", defaults.Align.DefaultLanguage, "Default language code when a request omits one")
	fs.Bool("asr-enabled", defaults.ASR.Enabled, "Allow falling back to ASR when a request omits a transcript")
	fs.String("asr-backend", defaults.ASR.DefaultBackend, "Default ASR backend (auto|parakeet|parakeet_tdt|crisper_whisper|whisper_large_v3|disabled)")
	fs.Bool("asr-use-hf", defaults.ASR.UseHF, "Request a real Hugging Face ASR backend (no real backend is wired; the simulator is always used)")
	fs.String("asr-device", defaults.ASR.Device, "ASR inference device preference (auto|cpu|cuda|mps)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)

	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	registerAliases(v)

	v.SetEnvPrefix("VOXALIGN")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("voxalign")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.word_model_manifest", c.Paths.WordModelManifest)
	v.SetDefault("paths.phoneme_model_manifest", c.Paths.PhonemeModelManifest)
	v.SetDefault("paths.tokenizer_model", c.Paths.TokenizerModel)
	v.SetDefault("runtime.threads", c.Runtime.Threads)
	v.SetDefault("runtime.inter_op_threads", c.Runtime.InterOpThreads)
	v.SetDefault("runtime.ort_library_path", c.Runtime.ORTLibraryPath)
	v.SetDefault("runtime.ort_version", c.Runtime.ORTVersion)
	v.SetDefault("runtime.device_preference", c.Runtime.DevicePref)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.shutdown_timeout_secs", c.Server.ShutdownTimeout)
	v.SetDefault("server.max_audio_bytes", c.Server.MaxAudioBytes)
	v.SetDefault("server.request_timeout_secs", c.Server.RequestTimeout)
	v.SetDefault("align.default_backend", c.Align.DefaultBackend)
	v.SetDefault("align.default_language", c.Align.DefaultLanguage)
	v.SetDefault("asr.enabled", c.ASR.Enabled)
	v.SetDefault("asr.default_backend", c.ASR.DefaultBackend)
	v.SetDefault("asr.use_hf", c.ASR.UseHF)
	v.SetDefault("asr.device", c.ASR.Device)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.word_model_manifest", "word-model-manifest")
	v.RegisterAlias("paths.phoneme_model_manifest", "phoneme-model-manifest")
	v.RegisterAlias("paths.tokenizer_model", "tokenizer-model")
	v.RegisterAlias("runtime.threads", "runtime-threads")
	v.RegisterAlias("runtime.inter_op_threads", "runtime-inter-op-threads")
	v.RegisterAlias("runtime.ort_library_path", "ort-lib")
	v.RegisterAlias("runtime.ort_version", "ort-version")
	v.RegisterAlias("runtime.device_preference", "device")
	v.RegisterAlias("server.listen_addr", "listen-addr")
	v.RegisterAlias("server.workers", "workers")
	v.RegisterAlias("server.shutdown_timeout_secs", "shutdown-timeout")
	v.RegisterAlias("server.max_audio_bytes", "max-audio-bytes")
	v.RegisterAlias("server.request_timeout_secs", "request-timeout")
	v.RegisterAlias("align.default_backend", "backend")
	v.RegisterAlias("align.default_language", "language")
	v.RegisterAlias("asr.enabled", "asr-enabled")
	v.RegisterAlias("asr.default_backend", "asr-backend")
	v.RegisterAlias("asr.use_hf", "asr-use-hf")
	v.RegisterAlias("asr.device", "asr-device")
	v.RegisterAlias("log_level", "log-level")
}
