package config

const (
	// SideSource names the original-language book.
	SideSource = "source"
	// SideTarget names the translated book.
	SideTarget = "target"

	// JoinModePair joins a proper noun with its immediate predecessor only.
	JoinModePair = "pair"
	// JoinModeRun joins a maximal run of consecutive proper nouns.
	JoinModeRun = "run"

	// TaggerKindHTTP talks to an external tagging service.
	TaggerKindHTTP = "http"
	// TaggerKindRule uses the built-in capitalization heuristic.
	TaggerKindRule = "rule"

	// ScorerRatio is the InDel similarity ratio.
	ScorerRatio = "ratio"
	// ScorerLevenshtein is the normalized Levenshtein similarity.
	ScorerLevenshtein = "levenshtein"
	// ScorerJaroWinkler is the Jaro-Winkler similarity.
	ScorerJaroWinkler = "jaro_winkler"

	// LogFileName is the run log inside paths.log_dir.
	LogFileName = "nounmap.log"
)

const (
	defaultOutputDir          = "~/nounmap/out"
	defaultLogDir             = "~/.local/share/nounmap/logs"
	defaultSourceLanguage     = "zh"
	defaultTargetLanguage     = "en"
	defaultMaxConcurrency     = 20
	defaultProperNounTag      = "PROPN"
	defaultSourceModel        = "zh_core_web_lg"
	defaultTargetModel        = "en_core_web_lg"
	defaultTaggerTimeout      = 30
	defaultTaggerRetries      = 3
	defaultNoiseFloor         = 10
	defaultMatchThreshold     = 90
	defaultMinSourceLength    = 2
	defaultMinTargetUppercase = 2
	defaultJSONFile           = "pairs.json"
	defaultPairFile           = "pairs.txt"
	defaultPairDelimiter      = ":"
	defaultNotifyTimeout      = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Source: Book{Language: defaultSourceLanguage},
		Target: Book{Language: defaultTargetLanguage},
		Extraction: Extraction{
			MaxConcurrency: defaultMaxConcurrency,
			JoinMode:       JoinModePair,
			ProperNounTag:  defaultProperNounTag,
		},
		Tagger: Tagger{
			Kind:           TaggerKindHTTP,
			SourceModel:    defaultSourceModel,
			TargetModel:    defaultTargetModel,
			TimeoutSeconds: defaultTaggerTimeout,
			RetryAttempts:  defaultTaggerRetries,
		},
		TagCache: TagCache{
			Enabled: true,
			Path:    defaultTagCachePath(),
		},
		Matching: Matching{
			NoiseFloor:         defaultNoiseFloor,
			MatchThreshold:     defaultMatchThreshold,
			MinSourceLength:    defaultMinSourceLength,
			MinTargetUppercase: defaultMinTargetUppercase,
			Scorer:             ScorerRatio,
		},
		Export: Export{
			JSONFile:      defaultJSONFile,
			PairFile:      defaultPairFile,
			PairDelimiter: defaultPairDelimiter,
		},
		Notify: Notify{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
