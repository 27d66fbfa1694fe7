package kb

import "sync"

// DatasetVersion is the schema version of the built-in dataset.
const DatasetVersion = "1.0.0"

// DefaultDataset returns a fresh copy of the built-in dataset.
func DefaultDataset() Dataset {
	return Dataset{
		Version: DatasetVersion,
		Eras: []Era{
			{Name: "唐代", Aliases: []string{"唐朝"}},
			{Name: "宋代", Aliases: []string{"宋朝"}},
			{Name: "晋代", Aliases: []string{"晋朝"}},
			{Name: "明代", Aliases: []string{"明朝"}},
			{Name: "清代", Aliases: []string{"清朝"}},
			{Name: "东晋"},
		},
		Calligraphers: []Calligrapher{
			{
				Name:        "王羲之",
				Dynasty:     "东晋",
				Style:       "行书",
				Works:       []string{"兰亭序", "黄庭经"},
				Description: "书圣，行书代表作《兰亭序》被誉为天下第一行书",
			},
			{
				Name:        "颜真卿",
				Dynasty:     "唐代",
				Style:       "楷书",
				Works:       []string{"祭侄文稿", "多宝塔碑"},
				Description: "楷书四大家之一，创立颜体",
			},
			{
				Name:        "苏轼",
				Dynasty:     "宋代",
				Style:       "行书",
				Works:       []string{"黄州寒食诗帖"},
				Description: "宋代书法四大家之一，尚意书风代表",
			},
			{
				Name:        "柳公权",
				Dynasty:     "唐代",
				Style:       "楷书",
				Works:       []string{"玄秘塔碑", "神策军碑"},
				Description: "楷书四大家之一，创立柳体",
			},
			{
				Name:        "张旭",
				Dynasty:     "唐代",
				Style:       "草书",
				Works:       []string{"古诗四帖"},
				Description: "草圣，狂草书法代表人物",
			},
			{
				Name:        "欧阳询",
				Dynasty:     "唐代",
				Style:       "楷书",
				Works:       []string{"九成宫醴泉铭"},
				Description: "楷书四大家族之一，欧体创始人",
			},
		},
		Styles: []Style{
			{
				Name:        "行书",
				Description: "笔势流畅、动静相宜，介于楷书和草书之间",
				Masters:     []string{"王羲之", "苏轼", "颜真卿"},
				Features:    []string{"用笔灵活", "结构自如", "书写便捷"},
			},
			{
				Name:        "楷书",
				Description: "结构严谨、笔画端正，法度森严",
				Masters:     []string{"颜真卿", "柳公权", "欧阳询"},
				Features:    []string{"横平竖直", "结构方正", "笔力劲健"},
			},
			{
				Name:        "草书",
				Description: "纵任奔逸、赴速急就，艺术性极强",
				Masters:     []string{"张旭", "怀素", "王献之"},
				Features:    []string{"笔势连绵", "气势贯通", "变化多端"},
			},
			{
				Name:        "隶书",
				Description: "字形扁平、笔画波磔，古朴典雅",
				Masters:     []string{"蔡邕", "钟繇", "邓石如"},
				Features:    []string{"蚕头雁尾", "一波三折", "结构严谨"},
			},
		},
	}
}

var (
	defaultOnce sync.Once
	defaultKB   *KnowledgeBase
)

// Default returns the knowledge base built from the built-in dataset.
// The value is shared; it is immutable so sharing is safe.
func Default() *KnowledgeBase {
	defaultOnce.Do(func() {
		defaultKB = MustNew(DefaultDataset())
	})
	return defaultKB
}
