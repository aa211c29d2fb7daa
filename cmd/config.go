package cmd

// Config carries the process configuration loaded from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL      string
	AmqpExchange string

	CalendarOpenHour  int
	CalendarCloseHour int
	CalendarSlotLimit int
	CalendarHolidays  []string
}
