// Package finance derives district spending ratios from the F-33 survey file
// and school subsidized-lunch percentages from the lunch program file.
package finance
