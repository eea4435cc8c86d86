package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// BusinessDefaults are the values applied when a create request omits them.
type BusinessDefaults struct {
	IGVPct            float64 `mapstructure:"igvPct"`
	DetraccionPct     float64 `mapstructure:"detraccionPct"`
	PartyStatus       string  `mapstructure:"partyStatus"`
	PurchaseStatus    string  `mapstructure:"purchaseStatus"`
	InvoiceStatus     string  `mapstructure:"invoiceStatus"`
	FreightStatus     string  `mapstructure:"freightStatus"`
	UserRole          string  `mapstructure:"userRole"`
	UserStatus        string  `mapstructure:"userStatus"`
	UserInactiveState string  `mapstructure:"userInactiveStatus"`
}

func DefaultBusinessDefaults() BusinessDefaults {
	return BusinessDefaults{
		IGVPct:            0.18,
		DetraccionPct:     0.04,
		PartyStatus:       "ACTIVO",
		PurchaseStatus:    "PENDIENTE",
		InvoiceStatus:     "EMITIDA",
		FreightStatus:     "PENDIENTE",
		UserRole:          "user",
		UserStatus:        "ACTIVO",
		UserInactiveState: "INACTIVO",
	}
}

type DefaultsHolder struct {
	current atomic.Value // holds BusinessDefaults
}

// StaticDefaults returns a holder that never reloads.
func StaticDefaults(d BusinessDefaults) *DefaultsHolder {
	h := &DefaultsHolder{}
	h.current.Store(d)
	return h
}

func NewDefaultsHolder(cfg Config, log *zap.Logger) (*DefaultsHolder, error) {
	return loadDefaults(cfg.DefaultsFile, log.Named("config.defaults"))
}

func loadDefaults(file string, log *zap.Logger) (*DefaultsHolder, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("maderas")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/maderas")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MADERAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	base := DefaultBusinessDefaults()
	v.SetDefault("defaults.igvPct", base.IGVPct)
	v.SetDefault("defaults.detraccionPct", base.DetraccionPct)
	v.SetDefault("defaults.partyStatus", base.PartyStatus)
	v.SetDefault("defaults.purchaseStatus", base.PurchaseStatus)
	v.SetDefault("defaults.invoiceStatus", base.InvoiceStatus)
	v.SetDefault("defaults.freightStatus", base.FreightStatus)
	v.SetDefault("defaults.userRole", base.UserRole)
	v.SetDefault("defaults.userStatus", base.UserStatus)
	v.SetDefault("defaults.userInactiveStatus", base.UserInactiveState)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	d := DefaultBusinessDefaults()
	if err := v.UnmarshalKey("defaults", &d); err != nil {
		return nil, err
	}
	if err := validateDefaults(d); err != nil {
		return nil, err
	}

	holder := StaticDefaults(d)
	if !fileLoaded {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated := DefaultBusinessDefaults()
		if err := v.UnmarshalKey("defaults", &updated); err != nil {
			log.Warn("defaults reload failed", zap.Error(err))
			return
		}
		if err := validateDefaults(updated); err != nil {
			log.Warn("invalid defaults ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("defaults reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

func (h *DefaultsHolder) Get() BusinessDefaults {
	return h.current.Load().(BusinessDefaults)
}

func validateDefaults(d BusinessDefaults) error {
	if d.IGVPct < 0 || d.IGVPct >= 1 {
		return errors.New("defaults.igvPct must be in [0,1)")
	}
	if d.DetraccionPct < 0 || d.DetraccionPct >= 1 {
		return errors.New("defaults.detraccionPct must be in [0,1)")
	}
	for key, value := range map[string]string{
		"defaults.partyStatus":        d.PartyStatus,
		"defaults.purchaseStatus":     d.PurchaseStatus,
		"defaults.invoiceStatus":      d.InvoiceStatus,
		"defaults.freightStatus":      d.FreightStatus,
		"defaults.userRole":           d.UserRole,
		"defaults.userStatus":         d.UserStatus,
		"defaults.userInactiveStatus": d.UserInactiveState,
	} {
		if strings.TrimSpace(value) == "" {
			return errors.New(key + " cannot be empty")
		}
	}
	return nil
}
