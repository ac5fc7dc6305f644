package config

const (
	defaultDataDir              = "~/.local/share/vitrine"
	defaultLogDir               = "~/.local/share/vitrine/logs"
	defaultContentStoreBackend  = "gateway"
	defaultGatewayURL           = "http://127.0.0.1:5001"
	defaultContentStoreTimeout  = 120
	defaultLedgerBackend        = "local"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultRemixFee       int64 = 0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		ContentStore: ContentStore{
			Backend:        defaultContentStoreBackend,
			GatewayURL:     defaultGatewayURL,
			TimeoutSeconds: defaultContentStoreTimeout,
		},
		Ledger: Ledger{
			Backend: defaultLedgerBackend,
		},
		Publish: Publish{
			RemixFee:         defaultRemixFee,
			DefaultRemixable: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
