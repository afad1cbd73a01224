package cmd

// Config carries all process configuration, loaded from the environment.
//
// DepositCapPercent and PaymentMethods are business parameters: the deposit
// cap as a fraction of the total price (for example "0.8") and the allowed
// payment method keys as a comma-separated list.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost               string
	KafkaNotificationsTopic string

	DepositCapPercent    string
	PaymentMethods       string
	PendingReminderAfter string
}
