package utils

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

func InitI18NBundle() {
	bundle = i18n.NewBundle(language.Korean)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "ko.yaml"))
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "en.yaml"))
}

func NewLocalizer(langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, langs...)
}

// Localize translates messageID, falling back to fallback when the bundle
// is not initialized or has no such message.
func Localize(messageID, fallback string, langs ...string) string {
	if bundle == nil {
		return fallback
	}

	msg, err := NewLocalizer(langs...).Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
	})
	if err != nil {
		return fallback
	}
	return msg
}
