package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// processStructFields overrides tagged fields of the struct s points to with
// the values of the environment variables they name. Nested sections are
// walked recursively; unset variables leave the field alone.
func processStructFields(s interface{}) error {
	return applyEnv(reflect.Indirect(reflect.ValueOf(s)))
}

func applyEnv(section reflect.Value) error {
	if section.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		meta := section.Type().Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field); err != nil {
				return err
			}
			continue
		}

		name, ok := meta.Tag.Lookup("env")
		if !ok || name == "" {
			continue
		}
		raw, set := os.LookupEnv(name)
		if !set {
			continue
		}
		if err := assign(field, raw); err != nil {
			return fmt.Errorf("env %s (%s): %w", name, meta.Name, err)
		}
	}
	return nil
}

// assign converts raw into the field's kind. Lists are comma separated.
func assign(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return fmt.Errorf("field is not settable")
	}

	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported list type %s", field.Type())
		}
		items := make([]string, 0)
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		field.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
