package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No .env file found — continuing with system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}
}

// BusinessConfig carries the storefront constants printed on quotations and
// used by the pricing engine. Everything is overridable from the environment
// and falls back to the shop's defaults.
type BusinessConfig struct {
	CompanyName    string
	CompanyAddress string
	SupportEmail   string
	SupportPhone   string
	AdminEmail     string

	BankName      string
	AccountName   string
	AccountNumber string
	IFSC          string
	UPIID         string

	// TransportFee is the flat transportation fee added at checkout;
	// DeliveryCharge is the flat charge shown on the cart page.
	TransportFee   float64
	DeliveryCharge float64
	AdvancePayment float64
	LockInMonths   int
}

func Business() BusinessConfig {
	return BusinessConfig{
		CompanyName:    envStr("COMPANY_NAME", "FurniRent"),
		CompanyAddress: envStr("COMPANY_ADDRESS", "21 MG Road, Bengaluru, Karnataka 560001"),
		SupportEmail:   envStr("COMPANY_SUPPORT_EMAIL", "support@furnirent.in"),
		SupportPhone:   envStr("COMPANY_SUPPORT_PHONE", "+91 80470 12345"),
		AdminEmail:     envStr("ADMIN_EMAIL", "orders@furnirent.in"),

		BankName:      envStr("COMPANY_BANK_NAME", "HDFC Bank"),
		AccountName:   envStr("COMPANY_ACCOUNT_NAME", "FurniRent Home Solutions Pvt Ltd"),
		AccountNumber: envStr("COMPANY_ACCOUNT_NUMBER", "50100234567890"),
		IFSC:          envStr("COMPANY_IFSC", "HDFC0000123"),
		UPIID:         envStr("COMPANY_UPI_ID", "furnirent@hdfcbank"),

		TransportFee:   envFloat("TRANSPORT_FEE", 650),
		DeliveryCharge: envFloat("DELIVERY_CHARGE", 650),
		AdvancePayment: envFloat("ADVANCE_PAYMENT", 1000),
		LockInMonths:   envInt("LOCK_IN_MONTHS", 3),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
