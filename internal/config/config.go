package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Export   ExportConfig
	Issuer   IssuerConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Host  string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type ExportConfig struct {
	Destination string
	Dir         string
	S3Bucket    string
	S3Region    string
	S3Prefix    string
}

// IssuerConfig seeds the issuer profile on first start.
type IssuerConfig struct {
	Name               string
	GSTIN              string
	Contact            string
	DealsIn            string
	Address            string
	SignatoryName      string
	Disclaimer         string
	DefaultNote1       string
	DefaultNote2       string
	DefaultBankDetails string
	DefaultCGSTRate    float64
	DefaultSGSTRate    float64
	DefaultIGSTRate    float64
}

type UploadConfig struct {
	MaxSize int64
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "gst-billing")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_HOST", "127.0.0.1")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_PATH", "billing.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "billing")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("EXPORT_DESTINATION", "file")
	viper.SetDefault("EXPORT_DIR", "./exports")
	viper.SetDefault("S3_REGION", "ap-south-1")
	viper.SetDefault("S3_PREFIX", "invoices")
	viper.SetDefault("UPLOAD_MAX_SIZE", 2097152)
	viper.SetDefault("ISSUER_NAME", "Raju Generator")
	viper.SetDefault("ISSUER_GSTIN", "10AMXPP3961C1Z3")
	viper.SetDefault("ISSUER_CONTACT", "9308054050")
	viper.SetDefault("ISSUER_DEALS_IN", "Generator Service, Repairing, Maintenance and Hire work.")
	viper.SetDefault("ISSUER_ADDRESS", "Exhibition Road, Raja Market, Patna - 800 001")
	viper.SetDefault("ISSUER_SIGNATORY", "Pappu Bhardwaj")
	viper.SetDefault("ISSUER_DISCLAIMER", "")
	viper.SetDefault("DEFAULT_NOTE1", "Goods once sold will not be taken back.")
	viper.SetDefault("DEFAULT_NOTE2", "All the disputes arising out of this invoice settled in Patna Jurisdiction.")
	viper.SetDefault("DEFAULT_BANK_DETAILS", "Bank of India, Jamal Road, Patna, A/C No. 44152010000578, IFSC - BKID0004415")
	viper.SetDefault("DEFAULT_CGST_RATE", 9)
	viper.SetDefault("DEFAULT_SGST_RATE", 9)
	viper.SetDefault("DEFAULT_IGST_RATE", 28)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Host:  viper.GetString("APP_HOST"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Path:     viper.GetString("DB_PATH"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		Export: ExportConfig{
			Destination: viper.GetString("EXPORT_DESTINATION"),
			Dir:         viper.GetString("EXPORT_DIR"),
			S3Bucket:    viper.GetString("S3_BUCKET"),
			S3Region:    viper.GetString("S3_REGION"),
			S3Prefix:    viper.GetString("S3_PREFIX"),
		},
		Issuer: IssuerConfig{
			Name:               viper.GetString("ISSUER_NAME"),
			GSTIN:              viper.GetString("ISSUER_GSTIN"),
			Contact:            viper.GetString("ISSUER_CONTACT"),
			DealsIn:            viper.GetString("ISSUER_DEALS_IN"),
			Address:            viper.GetString("ISSUER_ADDRESS"),
			SignatoryName:      viper.GetString("ISSUER_SIGNATORY"),
			Disclaimer:         viper.GetString("ISSUER_DISCLAIMER"),
			DefaultNote1:       viper.GetString("DEFAULT_NOTE1"),
			DefaultNote2:       viper.GetString("DEFAULT_NOTE2"),
			DefaultBankDetails: viper.GetString("DEFAULT_BANK_DETAILS"),
			DefaultCGSTRate:    viper.GetFloat64("DEFAULT_CGST_RATE"),
			DefaultSGSTRate:    viper.GetFloat64("DEFAULT_SGST_RATE"),
			DefaultIGSTRate:    viper.GetFloat64("DEFAULT_IGST_RATE"),
		},
		Upload: UploadConfig{
			MaxSize: viper.GetInt64("UPLOAD_MAX_SIZE"),
		},
	}
}

// Addr is the listen address for the local API.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// MySQLDSN builds a go-sql-driver style DSN.
func (c *DatabaseConfig) MySQLDSN() string {
	return c.User + ":" + c.Password +
		"@tcp(" + c.Host + ":" + c.Port + ")/" + c.Name +
		"?charset=utf8mb4&parseTime=True&loc=Local"
}

// SQLiteDSN enables foreign keys so item rows cascade with their invoice.
func (c *DatabaseConfig) SQLiteDSN() string {
	return c.Path + "?_pragma=foreign_keys(1)"
}
