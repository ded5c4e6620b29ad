package help

const ColdstartYAML = `# policy-engagement Quick Start

match_modes:
  token: "Tag_id split on , ; | / and whitespace, codes matched exactly (default)"
  substring: "Code matched anywhere in Tag_id; A1 also matches A10"

commands:
  full_run: |
    policy-engagement run --input Engagement_data_raw.csv --out-dir results

  tag_table: |
    policy-engagement process --input Engagement_data_raw.csv --output results/tags.csv

  category_table: |
    policy-engagement rollup --tags results/tags.csv --raw Engagement_data_raw.csv

  platform_frequency: |
    policy-engagement normalize --tags results/tags.csv --platform truth --raw Engagement_data_raw.csv

  signal_matrix: |
    policy-engagement matrix --tags results/tags.csv --scope x

  frequency_report: |
    policy-engagement report --tags results/tags.csv --top 5

  history: |
    policy-engagement runs
    policy-engagement runs show 3

  custom_taxonomy: |
    policy-engagement --taxonomy taxonomy.yaml --match substring run --input raw.csv

input_columns:
  Tag_id: "Policy tag code(s) of the post, e.g. A1 or \"A1, B3\""
  Category_id: "Category of the post (A, B, C)"
  Platform: "X or Truth Social"
  Likes: "Like count"
  Repost: "Repost / retweet count"
  Replies: "Reply / comment count"

tag_columns:
  Frequency (Count): "Records matching the tag"
  Frequency (%): "Count / total records x 100, 2 decimals"
  Total_Engagement: "Total_Likes + Total_Reposts + Total_Comments"
  X_Total_Engagement: "Engagement of matching X posts"
  Truth_Total_Engagement: "Engagement of matching Truth Social posts"
  Average_Engagement: "Total_Engagement / Frequency (Count), 0 when the tag has no records"
  X_Average_Engagement: "X engagement / X posts with the tag"
  Truth_Average_Engagement: "Truth Social engagement / Truth Social posts with the tag"

category_rows:
  Combined: "Sum over the category's tags"
  X: "Records of the category posted on X"
  Truth Social: "Records of the category posted on Truth Social"
  TOTAL: "All records; platform cells are blank when a category has no posts there"

quadrants:
  core_strategic: "Frequency and engagement at or above baseline"
  high_efficiency: "Below-baseline frequency, engagement at or above baseline"
  strong_push: "Frequency at or above baseline, below-baseline engagement"
  marginal: "Both below baseline"

baselines:
  overall: "Mean frequency %, mean average engagement"
  platform: "Mean platform frequency %, median platform average engagement"

key_files:
  - "results/tags.csv (tag-level table)"
  - "results/categories.csv (category-level table)"
  - "results/platform_x.csv, results/platform_truth.csv"
  - "results/matrix_overall.yaml, matrix_x.yaml, matrix_truth.yaml"
  - "results/report.yaml"
  - "results/manifest.yaml (input hash, counts, outputs)"
`
