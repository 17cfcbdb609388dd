// Package prompt fills a form model interactively. Fill walks a form
// definition and asks one question per field through a Driver; the default
// driver uses survey, tests substitute a scripted one.
package prompt
