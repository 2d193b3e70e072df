// Package fuzztests houses Go fuzz harnesses that exercise the Xypher front
// end (source -> lexer -> parser -> sema). Its goal is to guard against panics,
// hangs and broken span invariants on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// семантический анализ.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
