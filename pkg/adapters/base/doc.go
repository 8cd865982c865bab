// Package base предоставляет общие части источников строк для всех диалектов.
//
// # Основные компоненты
//
// SQLSource - реализация adapters.Source поверх database/sql:
//   - Connect() - открытие пула и Ping
//   - Query() - запрос, результат оборачивается в RowsCursor
//   - Exec() - DDL и загрузка тестовых данных
//
// RowsCursor / ValueCursor - реализация schema.Cursor:
//   - ColumnMeta() - метаданные колонки из sql.ColumnType
//   - аксессоры String/Int64/Float64/Decimal/Bool/Bytes/Date/Time/Timestamp
//
// Конвертеры To* - приведение значений драйверов к типам аксессоров.
// SQLite и MySQL отдают текст там, где PostgreSQL и MS SQL отдают типизированные значения.
//
// TypeTable / ParseTypeName - таблицы имен типов СУБД.
//
// Hook - schema.DialectHook с поведением по умолчанию для встраивания в хуки диалектов.
//
// # Использование
//
//	type Source struct {
//	    base.SQLSource
//	}
//
//	func NewSource() *Source {
//	    return &Source{SQLSource: base.SQLSource{
//	        Driver: "mysql",
//	        Types:  columnTypes,
//	        Normal: normalize,
//	        H:      Hook{Hook: base.NewHook(schema.DialectMySQL)},
//	    }}
//	}
package base
