package vocab

import "sync"

// pythonKeywords mirrors keyword.kwlist for Python 3.12.
//
//nolint:gochecknoglobals // Read-only lookup table.
var pythonKeywords = []string{
	"False", "None", "True",
	"and", "as", "assert", "async", "await",
	"break", "class", "continue",
	"def", "del",
	"elif", "else", "except",
	"finally", "for", "from",
	"global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not",
	"or", "pass", "raise", "return",
	"try", "while", "with", "yield",
}

// pythonBuiltins mirrors dir(builtins) without dunder names and without the
// constants that are already keywords.
//
//nolint:gochecknoglobals // Read-only lookup table.
var pythonBuiltins = []string{
	// Functions.
	"abs", "aiter", "all", "anext", "any", "ascii",
	"bin", "breakpoint", "callable", "chr", "classmethod", "compile",
	"copyright", "credits", "delattr", "dir", "divmod",
	"enumerate", "eval", "exec", "exit",
	"filter", "format", "getattr", "globals",
	"hasattr", "hash", "help", "hex",
	"id", "input", "isinstance", "issubclass", "iter",
	"len", "license", "locals", "map", "max", "min",
	"next", "oct", "open", "ord", "pow", "print", "property",
	"quit", "range", "repr", "reversed", "round",
	"setattr", "sorted", "staticmethod", "sum", "super",
	"vars", "zip",

	// Types.
	"bool", "bytearray", "bytes", "complex", "dict", "float", "frozenset",
	"int", "list", "memoryview", "object", "set", "slice", "str", "tuple", "type",

	// Constants.
	"Ellipsis", "NotImplemented",

	// Exceptions and warnings.
	"ArithmeticError", "AssertionError", "AttributeError", "BaseException",
	"BaseExceptionGroup", "BlockingIOError", "BrokenPipeError", "BufferError",
	"BytesWarning", "ChildProcessError", "ConnectionAbortedError", "ConnectionError",
	"ConnectionRefusedError", "ConnectionResetError", "DeprecationWarning",
	"EOFError", "EncodingWarning", "EnvironmentError", "Exception", "ExceptionGroup",
	"FileExistsError", "FileNotFoundError", "FloatingPointError", "FutureWarning",
	"GeneratorExit", "IOError", "ImportError", "ImportWarning", "IndentationError",
	"IndexError", "InterruptedError", "IsADirectoryError", "KeyError",
	"KeyboardInterrupt", "LookupError", "MemoryError", "ModuleNotFoundError",
	"NameError", "NotADirectoryError", "NotImplementedError", "OSError",
	"OverflowError", "PendingDeprecationWarning", "PermissionError",
	"ProcessLookupError", "RecursionError", "ReferenceError", "ResourceWarning",
	"RuntimeError", "RuntimeWarning", "StopAsyncIteration", "StopIteration",
	"SyntaxError", "SyntaxWarning", "SystemError", "SystemExit", "TabError",
	"TimeoutError", "TypeError", "UnboundLocalError", "UnicodeDecodeError",
	"UnicodeEncodeError", "UnicodeError", "UnicodeTranslateError",
	"UnicodeWarning", "UserWarning", "ValueError", "Warning", "ZeroDivisionError",
}

//nolint:gochecknoglobals // Process-wide immutable default, built once.
var (
	pythonOnce  sync.Once
	pythonVocab *Vocabulary
)

// Python returns the shared default Python vocabulary.
func Python() *Vocabulary {
	pythonOnce.Do(func() {
		pythonVocab = New(pythonKeywords, pythonBuiltins)
	})
	return pythonVocab
}
