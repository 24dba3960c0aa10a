package domain

import "errors"

// ErrorKind はミーム生成で発生するエラーの分類です。
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindRealtimeFetch
	KindGeneration
	KindRemoteCall
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRealtimeFetch:
		return "realtime_fetch"
	case KindGeneration:
		return "generation"
	case KindRemoteCall:
		return "remote_call"
	default:
		return "unknown"
	}
}

// ユーザーにそのまま表示するメッセージ群なのだ。
const (
	MsgBlankCharacter      = "Please enter a character description."
	MsgInvalidMediaType    = "Please upload a valid image file (JPEG, PNG, WebP)."
	MsgRealtimeFetchFailed = "Failed to fetch real-time trends. Please try again or turn off real-time mode."
	MsgNoTrendingTopic     = "AI could not find a trending topic. Please try again."
	MsgNoEditedImage       = "API did not return an edited image. Please try again."
	MsgNoGeneratedImage    = "API did not return an image. Please try a different character description."
	MsgUnknown             = "An unknown error occurred while generating the meme."
	FailurePrefix          = "Failed to generate meme: "
)

// MemeError は呼び出し元へ返す唯一のエラー型です。
// Msg はエンドユーザー向けの文言で、Err は診断用の原因なのだ。
type MemeError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *MemeError) Error() string {
	return e.Msg
}

func (e *MemeError) Unwrap() error {
	return e.Err
}

// Is は Kind が一致する MemeError を同一とみなします。
func (e *MemeError) Is(target error) bool {
	var t *MemeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Msg == ""
}

// Kind 比較用のセンチネルです。errors.Is(err, domain.ErrGeneration) のように使うのだ。
var (
	ErrValidation    = &MemeError{Kind: KindValidation}
	ErrRealtimeFetch = &MemeError{Kind: KindRealtimeFetch}
	ErrGeneration    = &MemeError{Kind: KindGeneration}
	ErrRemoteCall    = &MemeError{Kind: KindRemoteCall}
	ErrUnknown       = &MemeError{Kind: KindUnknown}
)

// NewValidationError は入力検証エラーを生成します。
func NewValidationError(msg string) *MemeError {
	return &MemeError{Kind: KindValidation, Msg: msg}
}

// NewRealtimeFetchError はトレンド取得失敗を表すエラーを生成します。
func NewRealtimeFetchError(cause error) *MemeError {
	return &MemeError{Kind: KindRealtimeFetch, Msg: MsgRealtimeFetchFailed, Err: cause}
}

// NewGenerationError は画像が返らなかったことを表すエラーを生成します。
func NewGenerationError(msg string) *MemeError {
	return &MemeError{Kind: KindGeneration, Msg: FailurePrefix + msg}
}

// NewRemoteCallError はリモート呼び出しの失敗を共通の接頭辞付きで包みます。
func NewRemoteCallError(cause error) *MemeError {
	detail := MsgUnknown
	if cause != nil {
		detail = cause.Error()
	}
	return &MemeError{Kind: KindRemoteCall, Msg: FailurePrefix + detail, Err: cause}
}

// NewUnknownError は分類できない失敗を表すエラーを生成します。
func NewUnknownError(cause error) *MemeError {
	return &MemeError{Kind: KindUnknown, Msg: MsgUnknown, Err: cause}
}

// KindOf はエラーチェーンから ErrorKind を取り出すのだ。MemeError でなければ KindUnknown なのだ。
func KindOf(err error) ErrorKind {
	var me *MemeError
	if errors.As(err, &me) {
		return me.Kind
	}
	return KindUnknown
}
