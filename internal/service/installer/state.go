package installer

// InstallState accumulates the wizard answers. Field tags drive the .env
// rendering through pkg/env.MarshalEnv.
type InstallState struct {
	EnableTelegram bool   `env:"ENABLE_TELEGRAM"`
	EnableCLI      bool   `env:"ENABLE_CLI"`
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	AIProvider     string `env:"AI_PROVIDER"`
	AIAPIKey       string `env:"AI_API_KEY"`
	AIBaseURL      string `env:"AI_BASE_URL"`
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnableCLI: true,
	}
}
