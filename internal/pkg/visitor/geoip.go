package visitor

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/oschwald/geoip2-golang"

	"linkhub/internal/config"
)

var (
	geoDB *geoip2.Reader
	once  sync.Once
)

// InitGeoDB opens the GeoLite2 database once and caches the reader. Returns
// nil if the database is not configured or not found (geo lookups are
// optional and degrade to Unknown).
func InitGeoDB() *geoip2.Reader {
	once.Do(func() {
		geoDB = openGeoDB()
	})
	return geoDB
}

func openGeoDB() *geoip2.Reader {
	cfg := config.GetConfig()
	logger := slog.Default()

	if cfg.GeoDBPath == "" {
		logger.Debug("GeoIP database path not configured - geo lookups disabled")
		return nil
	}

	if _, err := os.Stat(cfg.GeoDBPath); os.IsNotExist(err) {
		logger.Info("GeoLite2 database not found - geo lookups disabled",
			slog.String("path", cfg.GeoDBPath),
			slog.String("hint", "Download from https://www.maxmind.com/en/geolite2/signup"))
		return nil
	} else if err != nil {
		logger.Warn("Error checking GeoLite2 database file",
			slog.String("path", cfg.GeoDBPath),
			slog.Any("error", err))
		return nil
	}

	db, err := geoip2.Open(cfg.GeoDBPath)
	if err != nil {
		logger.Error("Failed to open GeoLite2 database",
			slog.String("path", cfg.GeoDBPath),
			slog.Any("error", err))
		return nil
	}

	logger.Info("GeoLite2 database initialized", slog.String("path", cfg.GeoDBPath))
	return db
}

func getGeoDB() *geoip2.Reader {
	return InitGeoDB()
}

// lookupGeo resolves an IP to (country ISO code, city name). Unresolvable,
// private, or unparseable addresses yield ("Unknown", "Unknown").
func lookupGeo(ipAddress string) (string, string) {
	db := getGeoDB()
	if db == nil {
		return UnknownCountry, UnknownCity
	}

	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return UnknownCountry, UnknownCity
	}

	record, err := db.City(ip)
	if err != nil {
		return UnknownCountry, UnknownCity
	}

	country := record.Country.IsoCode
	if country == "" || country == "--" {
		country = UnknownCountry
	}

	city := record.City.Names["en"]
	if city == "" {
		city = UnknownCity
	}

	return country, city
}
