package base

import (
	"strconv"
	"strings"

	"github.com/ruslano69/tdtp-rowmeta/pkg/core/schema"
)

// TypeResolver определяет SQLType по имени типа, которое сообщает драйвер
type TypeResolver interface {
	Lookup(name string) schema.SQLType
}

// TypeTable сопоставляет имена типов СУБД с SQLType.
// Ключи в верхнем регистре, без размеров и модификаторов.
type TypeTable map[string]schema.SQLType

// Lookup ищет тип по имени, неизвестные имена уходят в schema.SQLTypeFromName
func (t TypeTable) Lookup(name string) schema.SQLType {
	base, _ := ParseTypeName(name)
	if st, ok := t[base]; ok {
		return st
	}
	return schema.SQLTypeFromName(base)
}

// ParseTypeName отделяет базовое имя типа от аргументов.
// "DECIMAL(18, 2)" -> "DECIMAL", [18 2]; "INT UNSIGNED" -> "INT", nil
func ParseTypeName(name string) (string, []int) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "UNSIGNED ")
	n = strings.TrimSuffix(n, " UNSIGNED")

	var args []int
	if open := strings.IndexByte(n, '('); open >= 0 {
		if end := strings.IndexByte(n[open:], ')'); end > 0 {
			for _, part := range strings.Split(n[open+1:open+end], ",") {
				v, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					// MAX, пустые аргументы
					v = -1
				}
				args = append(args, v)
			}
			n = n[:open] + n[open+end+1:]
		}
	}
	return strings.Join(strings.Fields(n), " "), args
}
