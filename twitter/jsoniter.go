package twitter

import (
	"reflect"
	"strconv"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

const (
	// ddd MMM dd HH:mm:ss +ffff yyyy
	RFC2822 = "Mon Jan 02 15:04:05 -0700 2006"
)

// jsonTwitter decodes platform payloads. Field names are matched exactly,
// and numbers stored in interface{} values keep their integer precision.
var jsonTwitter = func() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:    false,
		CaseSensitive: true,
		SortMapKeys:   true,
	}.Froze()
	api.RegisterExtension(&twitterExtension{})
	return api
}()

var typeEmptyInterface = reflect.TypeOf((*interface{})(nil)).Elem()

type twitterExtension struct {
	jsoniter.DummyExtension
}

func (ext *twitterExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if typ.Type1() == typeEmptyInterface {
		return jsoniterNumberDec{}
	}
	return nil
}

// Status ids do not fit in a float64.
type jsoniterNumberDec struct{}

func (dec jsoniterNumberDec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.NumberValue:
		r := iter.ReadNumber()
		rs := r.String()

		if i64, err := strconv.ParseInt(rs, 10, 64); err == nil {
			*(*interface{})(ptr) = i64
			return
		}
		if ui64, err := strconv.ParseUint(rs, 10, 64); err == nil {
			*(*interface{})(ptr) = ui64
			return
		}
		if f64, err := strconv.ParseFloat(rs, 64); err == nil {
			*(*interface{})(ptr) = f64
			return
		}
		*(*interface{})(ptr) = r

	case jsoniter.ObjectValue:
		var m map[string]interface{}
		iter.ReadVal(&m)
		*(*interface{})(ptr) = m

	case jsoniter.ArrayValue:
		var a []interface{}
		iter.ReadVal(&a)
		*(*interface{})(ptr) = a

	default:
		*(*interface{})(ptr) = iter.Read()
	}
}

func parseRFC2822(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(RFC2822, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
