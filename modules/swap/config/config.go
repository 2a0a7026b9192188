package config

// DefaultPrecision is the number of decimal places kept in a quoted amount.
const DefaultPrecision = 18

type Config struct {
	Precision   int32    `mapstructure:"precision"`
	APIHandlers []string `mapstructure:"api_handlers"` // `http`
}

func Default() Config {
	return Config{
		Precision:   DefaultPrecision,
		APIHandlers: []string{"http"},
	}
}
