package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset.path", "") // built-in dataset

	v.SetDefault("log.json", false)

	v.SetDefault("gateway.provider", ProviderPassthrough)
	v.SetDefault("gateway.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("gateway.model", "deepseek-chat") // Should match gateway.DefaultModel
	v.SetDefault("gateway.api_key", "")
	v.SetDefault("gateway.timeout_seconds", 30)
	v.SetDefault("gateway.requests_per_minute", 30)
	v.SetDefault("gateway.allow_private_ip", false)

	v.SetDefault("repl.prompt", "请输入查询：")
	v.SetDefault("repl.exit_words", []string{"退出", "quit", "exit", "再见"})
}

// BindSensitiveEnvVars explicitly binds secrets to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	_ = v.BindEnv("gateway.api_key", "SHUFA_GATEWAY_API_KEY", "DEEPSEEK_API_KEY")
}
