package application

import "gleaner/bot/domain"

// BotController はボットの意思決定インターフェースです。
// 戻り値の false は「このtickは何もしない」を表します。
type BotController interface {
	Decide(board *domain.Board, name string) (domain.Decision, bool)
}
