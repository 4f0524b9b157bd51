// Package logging configures the shared logrus logger.
package logging

import (
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
)

// Setup installs the nested formatter and the given level. Unknown levels fall
// back to info and the returned error says why.
func Setup(level string) error {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&nested.Formatter{
		HideKeys:        false,
		FieldsOrder:     []string{"module", "function", "action"},
		TimestampFormat: "2006-01-02 15:04:05",
		NoColors:        os.Getenv("NO_COLOR") != "",
	})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
		return err
	}
	log.SetLevel(parsed)
	return nil
}
