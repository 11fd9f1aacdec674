package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/mingpan/internal/model"
)

func samplePromptInput() PromptInput {
	return PromptInput{
		Birth: BirthInfo{Date: "1990-01-01", Time: "8", Gender: "男", CalendarType: "农历", Shengxiao: "马"},
		Zodiac: model.ZodiacInfo{
			YearZhi:      "午",
			Compatible:   model.Compatible{Sanhe: []string{"虎", "狗"}, Liuhe: []string{"羊"}},
			Incompatible: model.Incompatible{Chong: []string{"鼠"}},
		},
		Analysis: "日主丙火",
	}
}

func TestInterpretationPrompt(t *testing.T) {
	p, err := InterpretationPrompt(samplePromptInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p, "你是一位专业的命理学专家"))
	assert.Contains(t, p, "- 出生日期：1990-01-01 (农历)")
	assert.Contains(t, p, "- 出生时辰：8点")
	assert.Contains(t, p, "- 三合：虎, 狗")
	assert.Contains(t, p, "- 三会：无")
	assert.Contains(t, p, "- 相冲：鼠")
	assert.Contains(t, p, "## 八字排盘分析：\n日主丙火")
	assert.NotContains(t, p, "结构化排盘")
	assert.True(t, strings.HasSuffix(p, "- 使用温和、积极的语调"))
}

func TestInterpretationPromptWithChart(t *testing.T) {
	in := samplePromptInput()
	in.Chart = &model.Chart{
		Pillars: []model.Pillar{
			{Label: "年柱", Gan: "己", Zhi: "巳", NaYin: "大林木", ShenSha: []string{"驿马"}},
			{Label: "日柱", Gan: "丙", Zhi: "寅", NaYin: "炉中火", ShenSha: []string{}},
		},
		DayMaster:        "丙",
		DayMasterElement: "火",
		Extras:           model.Extras{Strength: model.StrengthStrong, YongShen: []string{"土"}, JiShen: []string{"火", "木"}},
	}
	p, err := InterpretationPrompt(in)
	require.NoError(t, err)

	assert.Contains(t, p, "## 结构化排盘：")
	assert.Contains(t, p, "- 年柱：己巳（大林木） 神煞：驿马")
	assert.Contains(t, p, "- 日柱：丙寅（炉中火）\n")
	assert.Contains(t, p, "- 日主：丙（火），身强")
	assert.Contains(t, p, "- 喜用：土；忌：火, 木")
}

func TestParseStory(t *testing.T) {
	fenced := "好的：\n```json\n{\"title\":\"启程\",\"story\":\"...\",\"choices\":[\"东\",\"西\"],\"mood\":1}\n```\n"
	s, err := ParseStory(fenced)
	require.NoError(t, err)
	assert.Equal(t, "启程", s["title"])
	assert.Equal(t, float64(1), s["mood"])

	s, err = ParseStory(`  {"title":"t","story":"s","choices":[1,2,3]}  `)
	require.NoError(t, err)
	assert.Len(t, s["choices"], 3)

	_, err = ParseStory(`{"title":"t","story":"s"}`)
	var storyErr *StoryError
	require.ErrorAs(t, err, &storyErr)
	assert.Equal(t, "故事数据缺少字段: choices", storyErr.Reason)

	_, err = ParseStory(`{"title":"t","story":"s","choices":["only"]}`)
	require.ErrorAs(t, err, &storyErr)
	assert.Equal(t, "choices必须是包含至少2个元素的数组", storyErr.Reason)

	_, err = ParseStory("not json")
	require.ErrorAs(t, err, &storyErr)
}
