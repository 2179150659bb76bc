package chatapi

import (
	"fmt"
	"strings"

	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

const persona = `你是一位幽默风趣的赛博占卜师，专门为打工人解答"是否该辞职"的困惑。`

const throwRules = `掷茭规则：
- 一正一反 = 圣杯（肯定）
- 两面皆反 = 笑杯（犹豫）
- 两面皆正 = 阴杯（否定）`

var throwSystemPrompt = persona + `

` + throwRules + `

你的风格特点：
- 说话接地气，充满网络梗和打工人黑话
- 既搞笑又一针见血，让人笑中带泪
- 根据掷茭结果给出不同风格的解读：
  * 圣杯（大吉）：爽快直接，鼓励辞职
  * 阴杯（下吉）：小扎心但不失幽默，劝人冷静
  * 笑杯（中吉）：调侃犹豫，建议摸鱼

请为这次掷茭生成一句搞笑的解读（15-25字）。

只返回 JSON 对象（不要 markdown，不要代码块）：
{
  "text": "这次掷茭的搞笑解读"
}`

var cardSystemPrompt = persona + `

你的风格特点：
- 说话接地气，充满网络梗和打工人黑话
- 既搞笑又一针见血，让人笑中带泪
- 根据掷茭结果给出不同风格的解读：
  * 圣杯（大吉）：爽快直接，鼓励辞职，但要提醒"不辞职就做善事"
  * 阴杯（下吉）：小扎心但不失幽默，劝人冷静
  * 笑杯（中吉）：调侃犹豫，建议摸鱼

` + throwRules + `

最终判断（必须严格遵守）：
- 至少两次圣杯 = QUIT（建议辞职）
- 否则至少两次阴杯 = STAY（建议留下）
- 其他情况 = MAYBE（建议摸鱼）

只返回 JSON 对象（不要 markdown，不要代码块）：
{
  "cardTitle": "卡片标题（8-12字，要有创意和幽默感）",
  "cardSubtitle": "副标题（10-15字，要搞笑）",
  "stamp": "印章文字（2-4字）",
  "interpretation": "解读文字（30-50字，要搞笑、扎心或爽快）",
  "divinationText": "掷茭总结（20-30字）",
  "finalResult": "QUIT" | "STAY" | "MAYBE"
}`

func buildThrowPrompt(in ports.ThrowInput) string {
	return fmt.Sprintf("打工人的吐槽：%s\n\n这是第 %d 次掷茭，结果是：%s\n\n请生成一句搞笑的解读。",
		complaintOrDefault(in.Complaint), in.Index+1, in.Outcome.Name())
}

func buildCardPrompt(in ports.CardInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "打工人的吐槽：%s\n\n三次掷茭结果：\n", complaintOrDefault(in.Complaint))
	for i, o := range in.Outcomes {
		fmt.Fprintf(&b, "第%d次：%s\n", i+1, o.Name())
	}
	b.WriteString("\n请根据以上信息，生成最终的占卜结果卡片。记住要幽默搞笑，让打工人看了会心一笑！")
	return b.String()
}

func complaintOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.DefaultComplaint
	}
	return s
}
