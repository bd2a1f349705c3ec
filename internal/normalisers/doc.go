// Package normalisers turns uploaded documents into ordered page texts.
// Each sub-package reads one format; Registry picks one by file extension.
package normalisers
