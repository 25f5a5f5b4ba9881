package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session lifecycle (info)
		"Opening %s":                 "%s を開いています",
		"Opened %s: %dx%d, %.2f fps": "%s を開きました: %dx%d, %.2f fps",
		"Closed %s (%s)":             "%s を閉じました (%s)",
		"Reconnecting to %s in %s":   "%[2]s 後に %[1]s へ再接続します",
		"Session finished: %s":       "セッションが終了しました: %s",
		"End of stream %s":           "%s のストリーム終端に達しました",

		// Command level messages
		"Playing %s":                              "%s を再生中",
		"State: %s":                               "状態: %s",
		"Stopping after %s":                       "%s 経過したため停止します",
		"Interrupted, shutting down...":           "中断されました。シャットダウン中...",
		"Report saved to %s":                      "レポートを %s に保存しました",
		"Snapshots saved to %s":                   "スナップショットを %s に保存しました",
		"Using config %s":                         "設定ファイル %s を使用します",
		"Playback finished: %d frames, %d cycles": "再生終了: %d フレーム, %d サイクル",

		// Adapters (debug)
		"Indexed %d samples of %s track in %s":                       "%[3]s の %[2]s トラックから %[1]d サンプルを索引化しました",
		"Probed %s: %s %dx%d at %.2f fps":                            "%s を解析: %s %dx%d, %.2f fps",
		"Decoding %s with %s backend":                                "%s を %s バックエンドでデコードします",
		"Native MP4 reader failed on %s, falling back to ffmpeg: %v": "%s のネイティブMP4読み込みに失敗したため ffmpeg に切り替えます: %v",
		"Skipping packet: %v":                                        "パケットをスキップします: %v",

		// Warnings
		"Session already open, ignoring %s": "セッションは既に開いています。%s を無視します",
		"Read stalled on %s":                "%s の読み込みが停止しました",
		"Failed to read %s: %v":             "%s の読み込みに失敗しました: %v",
		"Failed to save snapshot: %v":       "スナップショットの保存に失敗しました: %v",

		// Errors
		"Failed to open %s: %v":               "%s を開けませんでした: %v",
		"No decodable video stream in %s: %v": "%s にデコード可能な映像ストリームがありません: %v",
		"Failed to close %s: %v":              "%s を閉じられませんでした: %v",
		"Failed to flush decoder: %v":         "デコーダのフラッシュに失敗しました: %v",
		"Failed to write report: %v":          "レポートの書き込みに失敗しました: %v",
	})
}
