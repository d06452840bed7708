package logsvc

import (
	"log"
	"strconv"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/auth"
)

// RollbarLogger prints every entry to a std logger and reports it to rollbar.
// Entries are a message followed by any of: an error, a map of extra fields, the auth.Identity
// of the caller. The identity becomes the rollbar person of the item and is never printed.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger reports to rollbar when conf.RollbarToken is set.
func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Address())
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

// Enable turns rollbar reporting on or off. Entries are still printed when disabled.
func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// payload returns what rollbar receives for an entry, and the first known caller among args.
func payload(msg string, args []interface{}) ([]interface{}, *auth.Identity) {
	var caller *auth.Identity
	items := append(make([]interface{}, 0, len(args)+1), msg)
	for _, arg := range args {
		id, ok := arg.(auth.Identity)
		if !ok {
			items = append(items, arg)
			continue
		}
		if caller == nil && id.ID != 0 {
			caller = &id
		}
	}
	return items, caller
}

func (l RollbarLogger) log(level, msg string, args []interface{}) {
	items, caller := payload(msg, args)
	if caller != nil {
		rollbar.SetPerson(strconv.Itoa(caller.ID), strings.TrimSpace(caller.FirstName+" "+caller.LastName), caller.Email)
	} else {
		rollbar.ClearPerson()
	}
	rollbar.Log(level, items...)

	l.std.Println(msg)
	for _, item := range items[1:] {
		l.std.Printf("%+v\n", item)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.DEBUG, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.INFO, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.WARN, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.ERR, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
