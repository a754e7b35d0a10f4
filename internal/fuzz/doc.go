// Package fuzztests houses Go fuzz harnesses for the script front end
// (source -> compile context -> tokenizer). Its goal is to smoke test
// robustness and guard against panics, runaway loops and broken token
// ranges on arbitrary inputs.
//
// Назначение: загружать байты как виртуальный юнит, прогонять их через
// токенизатор до EOF и проверять инварианты диапазонов токенов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/compile, internal/driver, internal/lexer,
// internal/testkit.
package fuzztests
