package builder

import (
	"github.com/shouni/go-meme-kit/internal/config"
	"github.com/shouni/go-meme-kit/pkg/asset"
	"github.com/shouni/go-meme-kit/pkg/catalog"
	"github.com/shouni/go-meme-kit/pkg/generator"
	"github.com/shouni/go-meme-kit/pkg/publish"
)

// AppContext は、アプリケーション実行に必要な共通コンポーネントを保持します。
// コマンドごとにこれを受け取ることで、依存関係の注入を簡素化するのだ。
type AppContext struct {
	Config    *config.Config      // Config は環境変数から読み込まれた設定です。
	Catalog   *catalog.Catalog    // Catalog はオフラインのシナリオに使うトピック分類表です。
	Generator generator.Generator // Generator はミーム生成のオーケストレーターです。
	Loader    *asset.Loader       // Loader は参照画像の読み込みを担当します。
	Publisher *publish.Publisher  // Publisher は生成結果の保存を担当します。
}
