package corpus

import "errors"

// ErrDataUnavailable is returned when a corpus source is missing, unreadable,
// or malformed. Callers may recover by loading a backup corpus.
var ErrDataUnavailable = errors.New("corpus data unavailable")
