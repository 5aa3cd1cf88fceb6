package config

type (
	InternalConfig struct {
		App      App
		JWT      JWT
		Gateway  Gateway
		Checkout Checkout
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		EndpointPrefix             string
		MaxRequests                int
		MaxTimeRequestsPerSeconds  int
		PaymentRateWindowInSeconds int
		PaymentRateMaxRequests     int
		ShutdownTimeout            int
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	// Gateway configures the intent-builder client that the mobile core uses
	// against our own preference endpoint.
	Gateway struct {
		BaseUrl          string
		TimeoutInSeconds int
	}

	// Checkout configures the external hosted-checkout provider.
	Checkout struct {
		BaseUrl          string
		AccessToken      string
		TimeoutInSeconds int
		SuccessURL       string
		FailureURL       string
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
