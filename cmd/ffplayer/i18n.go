// Package main provides localization for the ffplayer CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Source":        "入力ソース",
		"Logging":       "ログ",
		"Playback":      "再生",
		"Output":        "出力",

		// Root command
		"Play video files and network streams":                                                                                                "動画ファイルとネットワークストリームを再生",
		"ffplayer opens a local file or an RTSP/RTMP/HTTP stream, decodes its video and reports playback, optionally saving frame snapshots.": "ffplayerはローカルファイルまたはRTSP/RTMP/HTTPストリームを開いて映像をデコードし、再生結果を報告します。フレームのスナップショットも保存できます。",

		// Commands
		"Play a source until it ends or is interrupted": "終端に達するか中断されるまでソースを再生",
		"Open a source and print its video properties":  "ソースを開いて映像の情報を表示",
		"Show version information":                      "バージョン情報を表示",
		"ffplayer version %s":                           "ffplayer バージョン %s",
		"Decoders: %s":                                  "デコーダー: %s",

		// Configuration flags
		"YAML configuration file": "YAML設定ファイル",

		// Source flags
		"Time allowed to open or close a source":                              "ソースを開く・閉じる際の制限時間",
		"Time allowed to read one packet before the stream counts as stalled": "ストリーム停止と見なすまでの1パケット読み込み制限時間",
		"RTSP transport (tcp, udp, http)":                                     "RTSPトランスポート（tcp, udp, http）",
		"Downscale network sources wider than this (0 = source size)":         "この幅を超えるネットワークソースを縮小（0 = 元のサイズ）",
		"Path to ffmpeg executable":                                           "ffmpeg実行ファイルのパス",
		"Path to ffprobe executable":                                          "ffprobe実行ファイルのパス",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (text, logfmt, json)":      "ログ形式（text, logfmt, json）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Playback flags
		"Reopen the source after a stall":          "停止後にソースを開き直す",
		"Pause before reconnecting":                "再接続までの待ち時間",
		"Stop after this long (0 = until the end)": "指定時間で停止（0 = 終端まで）",
		"Open without starting playback":           "再生を開始せずに開く",

		// Output flags
		"Directory for frame snapshots":                    "フレームスナップショットの保存先",
		"Keep one snapshot every N frames":                 "Nフレームごとに1枚のスナップショットを保存",
		"Maximum snapshot width":                           "スナップショットの最大幅",
		"Do not draw frame captions on snapshots":          "スナップショットにキャプションを描画しない",
		"Output playback report to file (Markdown format)": "再生レポートをファイルに出力（Markdown形式）",

		// Runtime messages
		"URL argument is required":       "URL引数が必要です",
		"No frames decoded from %s (%s)": "%s からフレームをデコードできませんでした (%s)",
		"Could not open %s (%s)":         "%s を開けませんでした (%s)",
		"FFmpeg not available: %v":       "FFmpegを利用できません: %v",

		// Probe output
		"URL: %s":              "URL: %s",
		"Backend: %s":          "バックエンド: %s",
		"Frame size: %dx%d":    "フレームサイズ: %dx%d",
		"Frame rate: %.2f fps": "フレームレート: %.2f fps",
		"Duration: %.3f s":     "再生時間: %.3f 秒",
		"Duration: live":       "再生時間: ライブ",

		// Report content
		"Playback Report":    "再生レポート",
		"Item":               "項目",
		"Value":              "値",
		"URL":                "URL",
		"Backend":            "バックエンド",
		"Stream":             "ストリーム",
		"Frame Size":         "フレームサイズ",
		"Frame Rate":         "フレームレート",
		"Duration":           "再生時間",
		"Live":               "ライブ",
		"Frames":             "フレーム数",
		"Open Cycles":        "オープン回数",
		"Reconnects":         "再接続回数",
		"Skipped Packets":    "スキップしたパケット",
		"Last Exit":          "最後の終了理由",
		"Wall Time":          "経過時間",
		"First Frame":        "最初のフレームまで",
		"Last Position":      "最終位置",
		"Mean Display Delay": "平均表示間隔",
		"Settings":           "設定",
		"Auto Reconnect":     "自動再接続",
		"Open Timeout":       "オープンのタイムアウト",
		"Read Timeout":       "読み込みのタイムアウト",
		"Reconnect Delay":    "再接続の待ち時間",
		"RTSP Transport":     "RTSPトランスポート",
		"Snapshots":          "スナップショット",
		"Directory":          "ディレクトリ",
		"Files":              "ファイル数",
		"Size":               "サイズ",
		"Yes":                "はい",
		"No":                 "いいえ",
		"Generated at":       "生成日時",

		// Exit reasons
		"end-of-stream":       "ストリーム終端",
		"stall":               "停止",
		"abort":               "中断",
		"open-failure":        "オープン失敗",
		"stream-info-failure": "ストリーム情報の取得失敗",
	})
}
