package logger

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const redactedHTTP = "<RequestResponse>"

// Trace logs entry into method at debug level and returns a function that
// logs the exit with its duration and either the error or the results.
// Contexts and HTTP request/response values are never rendered; values that
// implement fmt.Stringer are logged through String so they can redact
// themselves.
//
//	done := logger.Trace(log, "books.Save", ctx, book)
//	saved, err := next.Save(ctx, book)
//	done(err, saved)
func Trace(log zerolog.Logger, method string, args ...any) func(err error, results ...any) {
	if log.GetLevel() > zerolog.DebugLevel {
		return func(error, ...any) {}
	}

	start := time.Now()
	log.Debug().Str("method", method).Array("args", redact(args)).Msg("begin")

	return func(err error, results ...any) {
		ev := log.Debug().Str("method", method).Dur("elapsed", time.Since(start))
		if err != nil {
			ev.Err(err).Msg("end")
			return
		}
		ev.Array("result", redact(results)).Msg("end")
	}
}

func redact(values []any) *zerolog.Array {
	arr := zerolog.Arr()
	for _, v := range values {
		switch x := v.(type) {
		case nil:
			arr.Interface(nil)
		case context.Context:
			arr.Str("<Context>")
		case *http.Request, http.ResponseWriter:
			arr.Str(redactedHTTP)
		case fmt.Stringer:
			arr.Str(x.String())
		case error:
			arr.Str(x.Error())
		default:
			arr.Interface(x)
		}
	}
	return arr
}
