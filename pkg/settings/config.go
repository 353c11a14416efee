package settings

import "time"

type Config struct {
	Queue  Queue  `mapstructure:"queue"`
	Driver Driver `mapstructure:"driver"`
	Logger Logger `mapstructure:"logger"`
	Server Server `mapstructure:"server"`
}

// Queue is the configuration for the bounded queue
type Queue struct {
	Capacity int `mapstructure:"capacity" validate:"gt=0"`
}

// Driver is the configuration for the producer/consumer driver
type Driver struct {
	Producers        int           `mapstructure:"producers" validate:"gt=0"`
	Consumers        int           `mapstructure:"consumers" validate:"gt=0"`
	ItemsPerProducer int           `mapstructure:"items_per_producer" validate:"gte=0"`
	MinDelay         time.Duration `mapstructure:"min_delay" validate:"gte=0"`
	MaxDelay         time.Duration `mapstructure:"max_delay" validate:"gtefield=MinDelay"`
}

// Server is the configuration for the status server
type Server struct {
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress"`
}
