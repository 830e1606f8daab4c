package cmd

// Config carries every externally supplied setting the process needs.
// Values come from the environment, loaded via godotenv in main.
type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	KafkaBrokers  []string
	KafkaTopic    string
	SweepSchedule string
}
